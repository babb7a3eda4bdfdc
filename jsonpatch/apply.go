package jsonpatch

import (
	"fmt"

	"github.com/signadot/treediff/debug"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// Apply applies an RFC 6902 patch to the JSON form of doc.  The result
// is parsed back, so variants JSON lacks (text, counters, timestamps,
// tables) come back as their plain counterparts, and whole floats as
// integers.
func Apply(doc ir.Value, patch []byte) (ir.Value, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	if debug.Apply() {
		debug.Logf("json patch of %d ops\n", len(ops))
	}
	d, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}
