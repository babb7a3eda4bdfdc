package main

import (
	"io"
	"os"
	"time"

	"github.com/signadot/treediff"
	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Text  bool `cli:"name=text desc='parse untagged strings as text'"`

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseTextStrings(cfg.Text)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	colors := []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	if cfg.Color {
		return colors
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return nil
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return colors
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Index     bool   `cli:"name=index desc='align sequences and text by index'"`
	JSONPatch bool   `cli:"name=jsonpatch desc='output an RFC 6902 JSON patch'"`
	Wire      bool   `cli:"name=wire desc='output the script as msgpack'"`
	Where     string `cli:"name=where desc='only output ops matching an expr predicate'"`
	Timeout   time.Duration

	Diff *cli.Command
}

func (cfg *DiffConfig) diffOpts() []treediff.DiffOpt {
	res := []treediff.DiffOpt{treediff.IndexAligned(cfg.Index)}
	if cfg.Timeout != 0 {
		res = append(res, treediff.DiffTimeout(cfg.Timeout))
	}
	return res
}

type PatchConfig struct {
	*MainConfig
	JSONPatch bool `cli:"name=jsonpatch desc='the script is an RFC 6902 JSON patch'"`

	Patch *cli.Command
}
