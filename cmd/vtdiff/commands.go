package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "vtdiff").
		WithSynopsis("vtdiff [opts] command [opts]").
		WithDescription("vtdiff computes and replays edit scripts between value trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vtMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			PatchCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	timeoutOpt := &cli.Opt{
		Name:        "timeout",
		Description: "time budget for aligning one sequence or text",
		Type:        cli.NamedFuncOpt(cfg.mkTimeout(), "(duration)"),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, timeoutOpt)

	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [opts] a b").
		WithDescription("print the edit script turning a into b, exit 1 if they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] doc script").
		WithDescription("replay a script written by diff -wire, or a JSON patch with -jsonpatch, against doc").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func (cfg *DiffConfig) mkTimeout() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = d
		return d, nil
	})
}
