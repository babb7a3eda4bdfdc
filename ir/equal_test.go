package ir

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	c := Cursor{Object: "o", Elem: "e", Index: 1}
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"null", Null(), Null(), true},
		{"nil is null", nil, Null(), true},
		{"int", FromInt(1), FromInt(1), true},
		{"int vs uint", FromInt(1), FromUint(1), false},
		{"int vs counter", FromInt(1), FromCounter(1), false},
		{"counter vs timestamp", FromCounter(1), FromTimestamp(1), false},
		{"f32 vs f64", FromFloat32(1.5), FromFloat(1.5), false},
		{"nan", FromFloat(math.NaN()), FromFloat(math.NaN()), false},
		{"f32 nan", FromFloat32(float32(math.NaN())), FromFloat32(float32(math.NaN())), false},
		{"signed zero", FromFloat(0), FromFloat(math.Copysign(0, -1)), true},
		{"string", FromString("a"), FromString("a"), true},
		{"string vs text", FromString("a"), FromText("a"), false},
		{"text", FromText("cafe\u0301"), FromGraphemes([]string{"c", "a", "f", "e\u0301"}), true},
		{"text normal forms", FromText("caf\u00e9"), FromText("cafe\u0301"), false},
		{"cursor", FromCursor(c), FromCursor(c), true},
		{"bool", FromBool(true), FromBool(false), false},
		{"sequence order", FromSlice([]Value{FromInt(1), FromInt(2)}), FromSlice([]Value{FromInt(2), FromInt(1)}), false},
		{"sequence length", FromSlice([]Value{FromInt(1)}), FromSlice(nil), false},
		{"map", FromMap(map[string]Value{"a": FromInt(1)}), FromMap(map[string]Value{"a": FromInt(1)}), true},
		{"map value", FromMap(map[string]Value{"a": FromInt(1)}), FromMap(map[string]Value{"a": FromInt(2)}), false},
		{"map keys", FromMap(map[string]Value{"a": FromInt(1)}), FromMap(map[string]Value{"b": FromInt(1)}), false},
		{"map vs table", FromMap(nil), FromTable(nil), false},
		{"map with nan", FromMap(map[string]Value{"a": FromFloat(math.NaN())}), FromMap(map[string]Value{"a": FromFloat(math.NaN())}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal(a, b) = %v, want %v", got, tt.expected)
			}
			if got := Equal(tt.b, tt.a); got != tt.expected {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSameShape(t *testing.T) {
	if !SameShape(FromInt(1), FromString("x")) {
		t.Error("scalars of different types have the same shape")
	}
	if SameShape(FromString("x"), FromText("x")) {
		t.Error("string and text have different shapes")
	}
	if SameShape(FromMap(nil), FromTable(nil)) {
		t.Error("map and table have different shapes")
	}
}

func TestClone(t *testing.T) {
	v := FromMap(map[string]Value{
		"s": FromSlice([]Value{FromInt(1), FromText("ab")}),
	})
	c := v.Clone().(*Map)
	c.Entries["s"].(*Sequence).Values[1].(*Text).Graphemes[0] = "x"
	c.Entries["n"] = Null()
	if !Equal(v, FromMap(map[string]Value{"s": FromSlice([]Value{FromInt(1), FromText("ab")})})) {
		t.Error("clone shares state with original")
	}
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"cafe", 4},
		{"caf\u00e9", 4},
		{"cafe\u0301", 4},
		{"\U0001F44D\U0001F3FD", 1},
		{"\U0001F1EB\U0001F1F7", 1},
		{"a\r\nb", 3},
	}
	for _, tt := range tests {
		if got := len(Graphemes(tt.in)); got != tt.want {
			t.Errorf("%q: got %d clusters, want %d", tt.in, got, tt.want)
		}
	}
}

func TestContainsCursor(t *testing.T) {
	c := FromCursor(Cursor{Object: "o", Elem: "e"})
	if !ContainsCursor(FromSlice([]Value{FromMap(map[string]Value{"c": c})})) {
		t.Error("nested cursor not found")
	}
	if ContainsCursor(FromMap(map[string]Value{"c": FromString("o/e/0")})) {
		t.Error("cursor found in string")
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var kk Kind
		if err := kk.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if kk != k {
			t.Errorf("%s became %s", k, kk)
		}
	}
	for _, st := range ScalarTypes() {
		d, err := st.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got ScalarType
		if err := got.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if got != st {
			t.Errorf("%s became %s", st, got)
		}
	}
}

func TestParseCursor(t *testing.T) {
	c := Cursor{Object: "1@abc", Elem: "4@def", Index: 7}
	got, err := ParseCursor(c.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("got %+v want %+v", got, c)
	}
	if _, err := ParseCursor("nope"); err == nil {
		t.Error("expected error")
	}
}
