package libdiff

import (
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// DiffScalar diffs two leaves.  Two counters differ by an increment,
// every other unequal pair by a replacement.
func DiffScalar(from, to *ir.Scalar, path ir.Path) (script.Script, error) {
	if ir.Equal(from, to) {
		return nil, nil
	}
	if from.Type == ir.CounterType && to.Type == ir.CounterType {
		return script.Script{script.NewIncrementCounter(path, to.Int64-from.Int64)}, nil
	}
	return Replace(path, to)
}
