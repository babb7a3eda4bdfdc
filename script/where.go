package script

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// OpEnv is the environment a [Where] predicate is evaluated in.
type OpEnv struct {
	Type  string
	Path  string
	Key   string
	Index int
	Count int
	Delta int64
	Text  string
}

func opEnv(op *Op) OpEnv {
	return OpEnv{
		Type:  op.Type.String(),
		Path:  op.Path.String(),
		Key:   op.Key,
		Index: op.Index,
		Count: op.Count,
		Delta: op.Delta,
		Text:  strings.Join(op.Text, ""),
	}
}

// Where returns the ops of s for which predicate, an expr-lang boolean
// expression over [OpEnv], is true.  For example
//
//	Type == "IncrementCounter" && Delta > 0
//
// Filtering generally breaks replay-correctness; it is meant for
// inspecting scripts.
func Where(s Script, predicate string) (Script, error) {
	prog, err := expr.Compile(predicate, expr.Env(OpEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", predicate, err)
	}
	res := Script{}
	for i := range s {
		out, err := expr.Run(prog, opEnv(&s[i]))
		if err != nil {
			return nil, fmt.Errorf("evaluating %q on op %d: %w", predicate, i, err)
		}
		if out.(bool) {
			res = append(res, s[i])
		}
	}
	return res, nil
}
