package debug

import (
	"testing"

	"github.com/signadot/treediff/ir"
)

func TestTreeString(t *testing.T) {
	tests := []struct {
		v    ir.Value
		want string
	}{
		{nil, "null"},
		{ir.FromInt(3), "3"},
		{ir.FromMap(map[string]ir.Value{"a": ir.FromText("hi")}), `{a: !text "hi"}`},
	}
	for _, tt := range tests {
		if got := (Tree{tt.v}).String(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}
