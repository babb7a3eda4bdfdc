package debug

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/signadot/treediff/encode"
	"github.com/signadot/treediff/ir"
)

// Tree formats a value in flow form.
type Tree struct{ ir.Value }

func (t Tree) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(ir.OrNull(t.Value), buf); err != nil {
		return fmt.Sprintf("[raw ir.Value] %v", t.Value)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Logf writes to stderr, rendering ir.Value arguments as trees.
func Logf(msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(ir.Value); ok {
			args[i] = Tree{x}.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
