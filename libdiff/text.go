package libdiff

import (
	"slices"

	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type hunk struct {
	start, count int
	text         []string
}

// DiffText aligns the grapheme clusters of from and to and replaces
// each maximal changed run with one SetTextRange.  Hunks are emitted
// last to first so that each start index refers to text not yet
// touched by the script.
func DiffText(from, to *ir.Text, path ir.Path, cfg *Config) (script.Script, error) {
	steps := align(from.Graphemes, to.Graphemes, cfg)
	var hunks []hunk
	open := false
	next := 0
	for _, st := range steps {
		switch st.op {
		case diffpatch.DiffEqual:
			open = false
			next = st.from + 1
			continue
		case diffpatch.DiffDelete:
			next = st.from + 1
		}
		if !open {
			start := next
			if st.op == diffpatch.DiffDelete {
				start = st.from
			}
			hunks = append(hunks, hunk{start: start})
			open = true
		}
		h := &hunks[len(hunks)-1]
		if st.op == diffpatch.DiffDelete {
			h.count++
		} else {
			h.text = append(h.text, to.Graphemes[st.to])
		}
	}
	res := make(script.Script, 0, len(hunks))
	for _, h := range slices.Backward(hunks) {
		text := h.text
		if text == nil {
			text = []string{}
		}
		res = append(res, script.NewSetTextRange(path, h.start, h.count, text))
	}
	return res, nil
}
