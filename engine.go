package treediff

import (
	"context"
	"fmt"

	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// Engine is a replication engine holding a document which can be
// mutated by edit scripts.
type Engine interface {
	// ApplyLocalChange applies s as a single local change.
	ApplyLocalChange(ctx context.Context, s script.Script) error
}

// Sync diffs from, the engine's current document, against to and hands
// the resulting script to eng.  The engine is not called when there is
// nothing to change.  The script is returned in either case.
func Sync(ctx context.Context, eng Engine, from, to ir.Value, opts ...DiffOpt) (script.Script, error) {
	s, err := Diff(from, to, opts...)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return s, nil
	}
	if err := eng.ApplyLocalChange(ctx, s); err != nil {
		return nil, fmt.Errorf("applying %d ops: %w", len(s), err)
	}
	return s, nil
}
