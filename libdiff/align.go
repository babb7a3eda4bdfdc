package libdiff

import (
	"unicode/utf8"

	"github.com/signadot/treediff/debug"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// step is one element of an alignment.  Equal steps have both from and
// to set, deletions only from and insertions only to.
type step struct {
	op       diffpatch.Operation
	from, to int
}

// align aligns two lists of element summaries.  Equal summaries may be
// aligned with each other, unequal ones never are.
//
// We map each distinct summary to a rune and let diffmatchpatch
// diff the rune strings, the same trick it uses for line mode.
func align(from, to []string, cfg *Config) []step {
	if cfg.indexAligned() {
		return alignByIndex(from, to)
	}
	m := map[string]rune{}
	fromRunes, ok := mapSummaries(m, from)
	if !ok {
		return alignByIndex(from, to)
	}
	toRunes, ok := mapSummaries(m, to)
	if !ok {
		return alignByIndex(from, to)
	}
	diffs := cfg.differ().DiffMainRunes(fromRunes, toRunes, false)
	res := make([]step, 0, max(len(from), len(to)))
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := utf8.RuneCountInString(diff.Text)
		for range n {
			switch diff.Type {
			case diffpatch.DiffEqual:
				res = append(res, step{op: diffpatch.DiffEqual, from: fi, to: ti})
				fi++
				ti++
			case diffpatch.DiffDelete:
				res = append(res, step{op: diffpatch.DiffDelete, from: fi, to: -1})
				fi++
			case diffpatch.DiffInsert:
				res = append(res, step{op: diffpatch.DiffInsert, from: -1, to: ti})
				ti++
			}
		}
	}
	if debug.Align() {
		debug.Logf("aligned %d with %d elements in %d diffs\n", len(from), len(to), len(diffs))
	}
	return res
}

func alignByIndex(from, to []string) []step {
	res := make([]step, 0, max(len(from), len(to)))
	n := min(len(from), len(to))
	for i := range n {
		if from[i] == to[i] {
			res = append(res, step{op: diffpatch.DiffEqual, from: i, to: i})
			continue
		}
		res = append(res,
			step{op: diffpatch.DiffDelete, from: i, to: -1},
			step{op: diffpatch.DiffInsert, from: -1, to: i})
	}
	for i := n; i < len(from); i++ {
		res = append(res, step{op: diffpatch.DiffDelete, from: i, to: -1})
	}
	for i := n; i < len(to); i++ {
		res = append(res, step{op: diffpatch.DiffInsert, from: -1, to: i})
	}
	return res
}

// mapSummaries assigns runes to summaries, skipping the surrogate range
// which does not survive conversion to a string.  It reports false when
// there are more distinct summaries than runes.
func mapSummaries(m map[string]rune, sums []string) ([]rune, bool) {
	rs := make([]rune, len(sums))
	for i, sum := range sums {
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			if r >= surrogateMin {
				r += surrogateMax - surrogateMin + 1
			}
			if r > utf8.MaxRune {
				return nil, false
			}
			m[sum] = r
		}
		rs[i] = r
	}
	return rs, true
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// match is a pair of aligned elements, either equal or paired up from
// adjacent deletions and insertions.
type match struct {
	from, to int
}

// pairUp turns an alignment into removed old indices, inserted new
// indices and matched pairs, all ascending.  Within each run of
// deletions and insertions, the i-th deletion is matched with the i-th
// insertion.
func pairUp(steps []step) (removed, inserted []int, matched []match) {
	var dels, inss []int
	flush := func() {
		n := min(len(dels), len(inss))
		for i := range n {
			matched = append(matched, match{from: dels[i], to: inss[i]})
		}
		removed = append(removed, dels[n:]...)
		inserted = append(inserted, inss[n:]...)
		dels, inss = dels[:0], inss[:0]
	}
	for _, st := range steps {
		switch st.op {
		case diffpatch.DiffEqual:
			flush()
			matched = append(matched, match{from: st.from, to: st.to})
		case diffpatch.DiffDelete:
			dels = append(dels, st.from)
		case diffpatch.DiffInsert:
			inss = append(inss, st.to)
		}
	}
	flush()
	return removed, inserted, matched
}
