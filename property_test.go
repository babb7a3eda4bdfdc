package treediff

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// gen builds random NaN and cursor free value trees.  Keys, strings
// and graphemes come from small pools so that random pairs overlap.
type gen struct {
	r *rand.Rand
}

func newGen(seed uint64) *gen {
	return &gen{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var (
	genKeys      = []string{"a", "b", "c", "d", "x.y", ""}
	genStrings   = []string{"", "a", "b", "hello"}
	genGraphemes = []string{"a", "b", "c", " ", "e\u0301", "\u00e9", "\U0001F44D\U0001F3FD"}
)

func (g *gen) value(depth int) ir.Value {
	n := 10
	if depth <= 0 {
		n = 7
	}
	switch g.r.IntN(n) {
	case 0:
		return ir.Null()
	case 1:
		return ir.FromString(genStrings[g.r.IntN(len(genStrings))])
	case 2:
		return ir.FromInt(int64(g.r.IntN(5)) - 2)
	case 3:
		switch g.r.IntN(4) {
		case 0:
			return ir.FromUint(uint64(g.r.IntN(3)))
		case 1:
			return ir.FromFloat32(float32(g.r.IntN(3)) / 2)
		case 2:
			return ir.FromTimestamp(1700000000 + int64(g.r.IntN(3)))
		}
		return ir.FromFloat(float64(g.r.IntN(3)) / 2)
	case 4:
		return ir.FromBool(g.r.IntN(2) == 0)
	case 5:
		return ir.FromCounter(int64(g.r.IntN(7)) - 3)
	case 6:
		return ir.FromGraphemes(g.graphemes())
	case 7, 8:
		vs := make([]ir.Value, g.r.IntN(5))
		for i := range vs {
			vs[i] = g.value(depth - 1)
		}
		return ir.FromSlice(vs)
	}
	m := map[string]ir.Value{}
	for range g.r.IntN(5) {
		m[genKeys[g.r.IntN(len(genKeys))]] = g.value(depth - 1)
	}
	if g.r.IntN(4) == 0 {
		return ir.FromTable(m)
	}
	return ir.FromMap(m)
}

func (g *gen) graphemes() []string {
	res := make([]string, g.r.IntN(8))
	for i := range res {
		res[i] = genGraphemes[g.r.IntN(len(genGraphemes))]
	}
	return res
}

// mutate returns a copy of v with a few random edits.
func (g *gen) mutate(v ir.Value, depth int) ir.Value {
	if g.r.IntN(8) == 0 {
		return g.value(depth)
	}
	switch x := v.Clone().(type) {
	case *ir.Map:
		for range g.r.IntN(3) {
			k := genKeys[g.r.IntN(len(genKeys))]
			cur, ok := x.Entries[k]
			switch {
			case !ok:
				x.Entries[k] = g.value(depth - 1)
			case g.r.IntN(3) == 0:
				delete(x.Entries, k)
			default:
				x.Entries[k] = g.mutate(cur, depth-1)
			}
		}
		return x
	case *ir.Sequence:
		for range g.r.IntN(4) {
			n := len(x.Values)
			switch g.r.IntN(3) {
			case 0:
				i := g.r.IntN(n + 1)
				x.Values = append(x.Values[:i], append([]ir.Value{g.value(depth - 1)}, x.Values[i:]...)...)
			case 1:
				if n > 0 {
					i := g.r.IntN(n)
					x.Values = append(x.Values[:i], x.Values[i+1:]...)
				}
			default:
				if n > 0 {
					i := g.r.IntN(n)
					x.Values[i] = g.mutate(x.Values[i], depth-1)
				}
			}
		}
		return x
	case *ir.Text:
		for range g.r.IntN(3) {
			n := len(x.Graphemes)
			i := g.r.IntN(n + 1)
			j := i + g.r.IntN(n-i+1)
			ins := g.graphemes()
			x.Graphemes = append(x.Graphemes[:i:i], append(ins, x.Graphemes[j:]...)...)
		}
		return x
	case *ir.Scalar:
		if x.Type == ir.CounterType {
			x.Int64 += int64(g.r.IntN(5)) - 2
			return x
		}
		return g.value(0)
	}
	return v
}

func TestDiffProperties(t *testing.T) {
	for seed := range uint64(500) {
		g := newGen(seed)
		a := g.value(3)
		b := g.mutate(a, 3)
		for _, opts := range [][]DiffOpt{nil, {IndexAligned(true)}} {
			name := strconv.FormatUint(seed, 10)
			if opts != nil {
				name += "/index"
			}
			t.Run(name, func(t *testing.T) {
				s, err := Diff(a, a.Clone(), opts...)
				if err != nil {
					t.Fatal(err)
				}
				if len(s) != 0 {
					t.Errorf("no-op diff of %s:\n%s", encode.MustString(a), s)
				}

				s, err = Diff(a, b, opts...)
				if err != nil {
					t.Fatal(err)
				}
				checkReplay(t, a, b, s)
				if ir.Equal(a, b) != (len(s) == 0) {
					t.Errorf("equal %v but script\n%s", ir.Equal(a, b), s)
				}

				codec, err := script.Marshal(s)
				if err != nil {
					t.Fatal(err)
				}
				s2, err := script.Unmarshal(codec)
				if err != nil {
					t.Fatal(err)
				}
				checkReplay(t, a, b, s2)
			})
		}
	}
}

func TestDiffCounterProperty(t *testing.T) {
	g := newGen(7)
	for range 200 {
		from := int64(g.r.Uint64())
		to := int64(g.r.Uint64())
		s, err := Diff(ir.FromCounter(from), ir.FromCounter(to))
		if err != nil {
			t.Fatal(err)
		}
		if from == to {
			if len(s) != 0 {
				t.Errorf("%d -> %d: expected no ops, got\n%s", from, to, s)
			}
			continue
		}
		if len(s) != 1 || s[0].Type != script.IncrementCounter || from+s[0].Delta != to {
			t.Errorf("%d -> %d: got\n%s", from, to, s)
		}
	}
}

// primitive draws a scalar over the full range of each type.  Floats
// are whole numbers so that NaN never appears.
func (g *gen) primitive() ir.Value {
	switch g.r.IntN(9) {
	case 0:
		return ir.FromString(strconv.FormatUint(g.r.Uint64()%4, 10))
	case 1:
		return ir.FromInt(int64(g.r.Uint64()))
	case 2:
		return ir.FromUint(g.r.Uint64())
	case 3:
		return ir.FromFloat(float64(int32(g.r.Uint32())))
	case 4:
		return ir.FromFloat32(float32(int32(g.r.Uint32())))
	case 5:
		return ir.FromCounter(int64(g.r.Uint64()))
	case 6:
		return ir.FromTimestamp(int64(g.r.Uint64()))
	case 7:
		return ir.FromBool(g.r.IntN(2) == 0)
	}
	return ir.Null()
}

func TestDiffPrimitiveProperty(t *testing.T) {
	g := newGen(11)
	for range 2000 {
		p, q := g.primitive(), g.primitive()
		s, err := Diff(p, p.Clone())
		if err != nil {
			t.Fatal(err)
		}
		if len(s) != 0 {
			t.Errorf("no-op diff of %s:\n%s", encode.MustString(p), s)
		}
		a := ir.FromMap(map[string]ir.Value{"k": p})
		b := ir.FromMap(map[string]ir.Value{"k": q})
		s, err = Diff(a, b)
		if err != nil {
			t.Fatal(err)
		}
		checkReplay(t, a, b, s)
	}
}
