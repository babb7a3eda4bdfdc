package script

import (
	"errors"
	"testing"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/parse"
)

func mustParse(t *testing.T, s string) ir.Value {
	t.Helper()
	v, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func mustPath(t *testing.T, s string) ir.Path {
	t.Helper()
	p, err := ir.ParsePath(s)
	if err != nil {
		t.Fatalf("path %q: %v", s, err)
	}
	return p
}

type applyTest struct {
	doc    string
	script func(t *testing.T) Script
	want   string
	err    bool
}

var applyTests = []applyTest{
	{
		doc: `{a: 1}`,
		script: func(t *testing.T) Script {
			return Script{
				NewSetMapValue(nil, "b", ir.FromSlice(nil)),
				NewInsertSequenceElement(mustPath(t, "$.b"), 0, ir.FromInt(2)),
				NewInsertSequenceElement(mustPath(t, "$.b"), 0, ir.FromInt(1)),
				NewRemoveMapKey(nil, "a"),
			}
		},
		want: `{b: [1, 2]}`,
	},
	{
		doc: `[1, 2, 3]`,
		script: func(t *testing.T) Script {
			return Script{
				NewRemoveSequenceElement(nil, 2),
				NewRemoveSequenceElement(nil, 0),
				NewSetScalar(mustPath(t, "$[0]"), ir.FromString("x")),
			}
		},
		want: `["x"]`,
	},
	{
		doc: `{t: !text "hello"}`,
		script: func(t *testing.T) Script {
			return Script{
				NewSetTextRange(mustPath(t, "$.t"), 1, 4, []string{"i"}),
				NewSetTextRange(mustPath(t, "$.t"), 2, 0, []string{"!"}),
			}
		},
		want: `{t: !text "hi!"}`,
	},
	{
		doc: `{c: !counter 5}`,
		script: func(t *testing.T) Script {
			return Script{NewIncrementCounter(mustPath(t, "$.c"), -7)}
		},
		want: `{c: !counter -2}`,
	},
	{
		doc: `{a: 1}`,
		script: func(t *testing.T) Script {
			return Script{NewSetScalar(nil, ir.FromInt(3))}
		},
		want: `3`,
	},
	{
		doc: `{a: 1}`,
		script: func(t *testing.T) Script {
			return Script{NewRemoveMapKey(nil, "b")}
		},
		err: true,
	},
	{
		doc: `[1]`,
		script: func(t *testing.T) Script {
			return Script{NewInsertSequenceElement(nil, 2, ir.Null())}
		},
		err: true,
	},
	{
		doc: `[1]`,
		script: func(t *testing.T) Script {
			return Script{NewRemoveSequenceElement(nil, 1)}
		},
		err: true,
	},
	{
		doc: `{t: !text "ab"}`,
		script: func(t *testing.T) Script {
			return Script{NewSetTextRange(mustPath(t, "$.t"), 1, 2, nil)}
		},
		err: true,
	},
	{
		doc: `{c: 1}`,
		script: func(t *testing.T) Script {
			return Script{NewIncrementCounter(mustPath(t, "$.c"), 1)}
		},
		err: true,
	},
	{
		doc: `{a: [1]}`,
		script: func(t *testing.T) Script {
			return Script{NewSetMapValue(mustPath(t, "$.a"), "k", ir.Null())}
		},
		err: true,
	},
	{
		doc: `{a: [1]}`,
		script: func(t *testing.T) Script {
			return Script{NewSetScalar(mustPath(t, "$.a[3]"), ir.Null())}
		},
		err: true,
	},
	{
		doc: `{a: 1}`,
		script: func(t *testing.T) Script {
			return Script{NewSetScalar(mustPath(t, "$.b.c"), ir.Null())}
		},
		err: true,
	},
}

func TestApply(t *testing.T) {
	for _, tt := range applyTests {
		doc := mustParse(t, tt.doc)
		before := encode.MustString(doc)
		s := tt.script(t)
		got, err := Apply(doc, s)
		if after := encode.MustString(doc); after != before {
			t.Errorf("apply modified input: %s -> %s", before, after)
		}
		if tt.err {
			if err == nil {
				t.Errorf("%s on %s: expected error, got %s", s, tt.doc, encode.MustString(got))
			} else if !errors.Is(err, ErrApply) {
				t.Errorf("%s on %s: error %v is not ErrApply", s, tt.doc, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s on %s: %v", s, tt.doc, err)
			continue
		}
		if enc := encode.MustString(got); enc != tt.want {
			t.Errorf("%s on %s: got %s want %s", s, tt.doc, enc, tt.want)
		}
	}
}

func TestApplyClonesValues(t *testing.T) {
	v := ir.FromSlice([]ir.Value{ir.FromInt(1)})
	got, err := Apply(ir.FromMap(nil), Script{NewSetMapValue(nil, "a", v)})
	if err != nil {
		t.Fatal(err)
	}
	v.Values[0] = ir.FromInt(2)
	if enc := encode.MustString(got); enc != "{a: [1]}" {
		t.Errorf("got %s", enc)
	}
}

func TestOpString(t *testing.T) {
	p := ir.Path{}.Field("a.b").Index(2)
	tests := []struct {
		op   Op
		want string
	}{
		{NewSetMapValue(nil, "k", ir.FromText("x")), `SetMapValue $ "k" !text "x"`},
		{NewRemoveMapKey(p, "k"), `RemoveMapKey $.'a.b'[2] "k"`},
		{NewInsertSequenceElement(p, 0, nil), `InsertSequenceElement $.'a.b'[2] 0 null`},
		{NewRemoveSequenceElement(nil, 4), `RemoveSequenceElement $ 4`},
		{NewSetTextRange(nil, 1, 2, []string{"x", "y"}), `SetTextRange $ 1:2 "xy"`},
		{NewIncrementCounter(nil, 3), `IncrementCounter $ +3`},
		{NewSetScalar(nil, ir.FromFloat(1)), `SetScalar $ 1.0`},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("got %s want %s", got, tt.want)
		}
	}
}

func TestOpTypeText(t *testing.T) {
	for ot := range opTypeNames {
		d, err := ot.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got OpType
		if err := got.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if got != ot {
			t.Errorf("%s: got %s", ot, got)
		}
	}
	var ot OpType
	if err := ot.UnmarshalText([]byte("Frobnicate")); err == nil {
		t.Errorf("expected error")
	}
}

func TestTarget(t *testing.T) {
	op := NewRemoveMapKey(ir.Path{}.Index(1), "x")
	if got := op.Target().String(); got != "$[1].x" {
		t.Errorf("got %s", got)
	}
	op = NewInsertSequenceElement(nil, 3, ir.Null())
	if got := op.Target().String(); got != "$[3]" {
		t.Errorf("got %s", got)
	}
	op = NewIncrementCounter(ir.Path{}.Field("c"), 1)
	if got := op.Target().String(); got != "$.c" {
		t.Errorf("got %s", got)
	}
}
