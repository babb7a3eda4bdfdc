package libdiff

import (
	"errors"
	"strconv"
	"testing"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"

	"github.com/google/go-cmp/cmp"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func strs(s string) []string {
	res := make([]string, len(s))
	for i := range s {
		res[i] = s[i : i+1]
	}
	return res
}

func TestAlign(t *testing.T) {
	steps := align(strs("abc"), strs("ac"), nil)
	want := []step{
		{op: diffpatch.DiffEqual, from: 0, to: 0},
		{op: diffpatch.DiffDelete, from: 1, to: -1},
		{op: diffpatch.DiffEqual, from: 2, to: 1},
	}
	if diff := cmp.Diff(want, steps, cmp.AllowUnexported(step{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAlignByIndex(t *testing.T) {
	steps := alignByIndex(strs("abc"), strs("xb"))
	want := []step{
		{op: diffpatch.DiffDelete, from: 0, to: -1},
		{op: diffpatch.DiffInsert, from: -1, to: 0},
		{op: diffpatch.DiffEqual, from: 1, to: 1},
		{op: diffpatch.DiffDelete, from: 2, to: -1},
	}
	if diff := cmp.Diff(want, steps, cmp.AllowUnexported(step{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	steps = align(strs("ab"), strs("abcd"), &Config{IndexAligned: true})
	if len(steps) != 4 || steps[3].op != diffpatch.DiffInsert || steps[3].to != 3 {
		t.Errorf("got %v", steps)
	}
}

func TestPairUp(t *testing.T) {
	steps := []step{
		{op: diffpatch.DiffDelete, from: 0, to: -1},
		{op: diffpatch.DiffDelete, from: 1, to: -1},
		{op: diffpatch.DiffInsert, from: -1, to: 0},
		{op: diffpatch.DiffEqual, from: 2, to: 1},
		{op: diffpatch.DiffInsert, from: -1, to: 2},
		{op: diffpatch.DiffInsert, from: -1, to: 3},
	}
	removed, inserted, matched := pairUp(steps)
	if diff := cmp.Diff([]int{1}, removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, inserted); diff != "" {
		t.Errorf("inserted (-want +got):\n%s", diff)
	}
	want := []match{{from: 0, to: 0}, {from: 2, to: 1}}
	if diff := cmp.Diff(want, matched, cmp.AllowUnexported(match{})); diff != "" {
		t.Errorf("matched (-want +got):\n%s", diff)
	}
}

func TestMapSummariesSkipsSurrogates(t *testing.T) {
	m := map[string]rune{}
	for i := range surrogateMin {
		m[strconv.Itoa(i)] = rune(i)
	}
	rs, ok := mapSummaries(m, []string{"0", "new", "new"})
	if !ok {
		t.Fatal("ran out of runes")
	}
	want := []rune{0, surrogateMax + 1, surrogateMax + 1}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffText(t *testing.T) {
	tests := []struct {
		from, to string
		cfg      *Config
		want     []string
	}{
		{"abc", "abc", nil, nil},
		{"abc", "axc", nil, []string{`SetTextRange $ 1:1 "x"`}},
		{"ab", "", nil, []string{`SetTextRange $ 0:2 ""`}},
		{"", "ab", nil, []string{`SetTextRange $ 0:0 "ab"`}},
		{"abc", "axcd", &Config{IndexAligned: true}, []string{
			`SetTextRange $ 3:0 "d"`,
			`SetTextRange $ 1:1 "x"`,
		}},
	}
	for _, tt := range tests {
		from, to := ir.FromText(tt.from), ir.FromText(tt.to)
		s, err := DiffText(from, to, nil, tt.cfg)
		if err != nil {
			t.Fatal(err)
		}
		var want string
		for _, line := range tt.want {
			want += line + "\n"
		}
		if got := s.String(); got != want {
			t.Errorf("%q -> %q: got\n%swant\n%s", tt.from, tt.to, got, want)
		}
		res, err := script.Apply(from, s)
		if err != nil {
			t.Fatal(err)
		}
		if enc, want := encode.MustString(res), encode.MustString(to); enc != want {
			t.Errorf("%q -> %q: replay got %s", tt.from, tt.to, enc)
		}
	}
}

func TestDiffScalar(t *testing.T) {
	p := ir.Path{}.Field("x")
	s, err := DiffScalar(ir.FromCounter(10), ir.FromCounter(4), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0].String() != "IncrementCounter $.x -6" {
		t.Errorf("got %s", s)
	}
	s, err = DiffScalar(ir.FromInt(1), ir.FromFloat(1), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0].String() != "SetScalar $.x 1.0" {
		t.Errorf("got %s", s)
	}
	s, err = DiffScalar(ir.FromString("a"), ir.FromString("a"), p)
	if err != nil || len(s) != 0 {
		t.Errorf("got %s, %v", s, err)
	}
	c := ir.FromCursor(ir.Cursor{Object: "o", Elem: "e"})
	if _, err := DiffScalar(ir.Null(), c, p); !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
}

// replace is a DiffFunc which does not recurse.
func replace(from, to ir.Value, path ir.Path) (script.Script, error) {
	if ir.Equal(from, to) {
		return nil, nil
	}
	return Replace(path, ir.OrNull(to))
}

func TestDiffMap(t *testing.T) {
	from := ir.FromMap(map[string]ir.Value{
		"gone": ir.FromInt(1),
		"same": ir.FromInt(2),
		"chg":  ir.FromInt(3),
		"kind": ir.FromSlice(nil),
	})
	to := ir.FromMap(map[string]ir.Value{
		"same": ir.FromInt(2),
		"chg":  ir.FromInt(4),
		"kind": ir.FromMap(nil),
		"new":  nil,
	})
	s, err := DiffMap(from, to, nil, replace)
	if err != nil {
		t.Fatal(err)
	}
	want := `RemoveMapKey $ "gone"
SetScalar $.chg 4
SetMapValue $ "kind" {}
SetMapValue $ "new" null
`
	if got := s.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestDiffSequence(t *testing.T) {
	from := ir.FromSlice([]ir.Value{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)})
	to := ir.FromSlice([]ir.Value{ir.FromInt(0), ir.FromInt(1), ir.FromInt(3), ir.FromInt(4)})
	s, err := DiffSequence(from, to, nil, nil, replace)
	if err != nil {
		t.Fatal(err)
	}
	res, err := script.Apply(from, s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	if got := encode.MustString(res); got != "[0, 1, 3, 4]" {
		t.Errorf("%s: got %s", s, got)
	}
	c := ir.FromCursor(ir.Cursor{Object: "o", Elem: "e"})
	_, err = DiffSequence(from, ir.FromSlice([]ir.Value{c}), nil, &Config{IndexAligned: true}, replace)
	if !errors.Is(err, ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
}
