package ir

import "github.com/rivo/uniseg"

// Graphemes splits s into extended grapheme clusters.
func Graphemes(s string) []string {
	res := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		res = append(res, g.Str())
	}
	return res
}
