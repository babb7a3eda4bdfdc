package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Diff  bool
	Align bool
	Apply bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("TREEDIFF_DEBUG_DIFF")
	d.Align = boolEnv("TREEDIFF_DEBUG_ALIGN")
	d.Apply = boolEnv("TREEDIFF_DEBUG_APPLY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Align() bool {
	return d.Align
}
func Apply() bool {
	return d.Apply
}
