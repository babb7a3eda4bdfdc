package script

import (
	"testing"

	"github.com/signadot/treediff/ir"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vmihailenco/msgpack/v5"
)

func TestCodecRoundTrip(t *testing.T) {
	p := ir.Path{}.Field("a").Index(3).Field("")
	s := Script{
		NewRemoveSequenceElement(p, 1),
		NewSetMapValue(p, "k", ir.FromMap(map[string]ir.Value{
			"seq":  ir.FromSlice([]ir.Value{ir.FromInt(-1), ir.FromUint(1 << 63), ir.Null()}),
			"tab":  ir.FromTable(map[string]ir.Value{"x": ir.FromFloat32(0.25)}),
			"text": ir.FromText("h\u00e9llo"),
			"c":    ir.FromCounter(9),
			"ts":   ir.FromTimestamp(1700000000),
			"cur":  ir.FromCursor(ir.Cursor{Object: "doc", Elem: "e7", Index: 2}),
			"b":    ir.FromBool(true),
			"f":    ir.FromFloat(2.5),
		})),
		NewInsertSequenceElement(nil, 0, ir.FromString("s")),
		NewSetTextRange(p, 2, 1, []string{"e\u0301"}),
		NewSetTextRange(p, 2, 1, []string{}),
		NewIncrementCounter(p, -3),
		NewSetScalar(nil, ir.Null()),
		NewRemoveMapKey(nil, "gone"),
	}
	d, err := Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestCodecErrors(t *testing.T) {
	bad := []wireOp{{Type: 99}}
	d, err := msgpack.Marshal(bad)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(d); err == nil {
		t.Errorf("expected error for unknown op type")
	}

	f, i := "f", 1
	bad = []wireOp{{Type: uint8(RemoveMapKey), Path: []wireSeg{{Field: &f, Index: &i}}}}
	d, err = msgpack.Marshal(bad)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(d); err == nil {
		t.Errorf("expected error for ambiguous segment")
	}

	bad = []wireOp{{Type: uint8(SetScalar), Value: &wireValue{Kind: 42}}}
	d, err = msgpack.Marshal(bad)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(d); err == nil {
		t.Errorf("expected error for unknown kind")
	}

	if _, err := Unmarshal([]byte{0xc1}); err == nil {
		t.Errorf("expected error for garbage")
	}
}
