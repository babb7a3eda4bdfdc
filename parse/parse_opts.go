package parse

type parseOpts struct {
	textStrings bool
}

type ParseOption func(*parseOpts)

// ParseTextStrings makes untagged strings parse as text rather than as
// string scalars.
func ParseTextStrings(v bool) ParseOption {
	return func(o *parseOpts) { o.textStrings = v }
}
