package libdiff

import (
	"time"

	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffFunc diffs a nested pair of values located at path.
type DiffFunc func(from, to ir.Value, path ir.Path) (script.Script, error)

type Config struct {
	// IndexAligned aligns sequences and texts position by position
	// instead of by longest common subsequence.
	IndexAligned bool

	// Timeout bounds the time spent aligning a single sequence or text.
	// Zero means the diffmatchpatch default.  A timed out alignment is
	// valid but may not be minimal.
	Timeout time.Duration
}

func (c *Config) differ() *diffpatch.DiffMatchPatch {
	d := diffpatch.New()
	if c != nil && c.Timeout > 0 {
		d.DiffTimeout = c.Timeout
	}
	return d
}

func (c *Config) indexAligned() bool {
	return c != nil && c.IndexAligned
}
