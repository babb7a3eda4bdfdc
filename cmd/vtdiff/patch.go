package main

import (
	"fmt"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/jsonpatch"
	"github.com/signadot/treediff/script"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a document and a script", cli.ErrUsage)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one of doc and script may be stdin", cli.ErrUsage)
	}
	doc, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	d, err := readFile(cc, args[1])
	if err != nil {
		return err
	}
	var res ir.Value
	if cfg.JSONPatch {
		res, err = jsonpatch.Apply(doc, d)
	} else {
		res, err = applyScript(doc, d)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[0], err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func applyScript(doc ir.Value, d []byte) (ir.Value, error) {
	s, err := script.Unmarshal(d)
	if err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	return script.Apply(doc, s)
}
