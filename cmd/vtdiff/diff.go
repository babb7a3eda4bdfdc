package main

import (
	"fmt"

	"github.com/signadot/treediff"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/jsonpatch"
	"github.com/signadot/treediff/script"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.JSONPatch && cfg.Wire {
		return fmt.Errorf("%w: at most one of -jsonpatch and -wire", cli.ErrUsage)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, a, b ir.Value) (bool, error) {
	s, err := treediff.Diff(a, b, cfg.diffOpts()...)
	if err != nil {
		return false, err
	}
	if len(s) == 0 {
		return false, nil
	}
	out := s
	if cfg.Where != "" {
		out, err = script.Where(s, cfg.Where)
		if err != nil {
			return false, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	w := cc.Out
	switch {
	case cfg.Wire:
		d, err := script.Marshal(out)
		if err != nil {
			return false, err
		}
		if _, err := w.Write(d); err != nil {
			return false, err
		}
	case cfg.JSONPatch:
		if cfg.Where != "" {
			return false, fmt.Errorf("%w: -where cannot be combined with -jsonpatch", cli.ErrUsage)
		}
		d, err := jsonpatch.FromScript(a, s)
		if err != nil {
			return false, fmt.Errorf("error exporting json patch: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", d); err != nil {
			return false, err
		}
	default:
		if _, err := w.Write([]byte(out.Format(cfg.encOpts(w)...))); err != nil {
			return false, err
		}
	}
	return true, nil
}
