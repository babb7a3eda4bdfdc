package libdiff

import (
	"errors"
	"fmt"

	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// ErrIncompatible is returned when a change cannot be expressed as ops
// a replication engine accepts.
var ErrIncompatible = errors.New("incompatible change")

// Replace returns the script replacing the value at path with to.
func Replace(path ir.Path, to ir.Value) (script.Script, error) {
	if err := Writable(path, to); err != nil {
		return nil, err
	}
	return script.Script{script.NewSetScalar(path, to.Clone())}, nil
}

// Writable checks that v can be written by an op at path.  Cursors are
// references into the engine's own history and cannot be created from
// a value.
func Writable(path ir.Path, v ir.Value) error {
	if ir.ContainsCursor(v) {
		return fmt.Errorf("%w at %s: cannot write a cursor", ErrIncompatible, path)
	}
	return nil
}
