package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a [Path]: exactly one of Field and Index is
// set.
type Segment struct {
	Field *string
	Index *int
}

// Path locates a value from the root of a tree.  The empty path is the
// root.
type Path []Segment

// Field returns a copy of p extended by the map key f.
func (p Path) Field(f string) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, Segment{Field: &f})
}

// Index returns a copy of p extended by the sequence index i.
func (p Path) Index(i int) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, Segment{Index: &i})
}

// Parent returns p without its last segment and that segment.
func (p Path) Parent() (Path, Segment) {
	if len(p) == 0 {
		return nil, Segment{}
	}
	return p[:len(p)-1], p[len(p)-1]
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i].String() != o[i].String() {
			return false
		}
	}
	return true
}

func (s Segment) String() string {
	if s.Field != nil {
		return "." + pathString(*s.Field)
	}
	if s.Index != nil {
		return "[" + strconv.Itoa(*s.Index) + "]"
	}
	return ""
}

func (p Path) String() string {
	var buf strings.Builder
	buf.WriteByte('$')
	for _, s := range p {
		buf.WriteString(s.String())
	}
	return buf.String()
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp, err := ParsePath(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}

func ParsePath(p string) (Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	res := Path{}
	frag := p[1:]
	for len(frag) != 0 {
		switch frag[0] {
		case '.':
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, err
			}
			res = res.Field(field)
			frag = rest
		case '[':
			i := strings.IndexByte(frag[1:], ']')
			if i == -1 {
				return nil, fmt.Errorf("expected '[' <index> ']'")
			}
			index, err := parseIndex(frag[1 : i+1])
			if err != nil {
				return nil, err
			}
			res = res.Index(index)
			frag = frag[i+2:]
		default:
			return nil, fmt.Errorf("expected '.' or '['")
		}
	}
	return res, nil
}

func parseIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(u64), nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// Get returns the value at path p in v without copying it.
func Get(v Value, p Path) (Value, error) {
	res := OrNull(v)
	for i, seg := range p {
		switch {
		case seg.Index != nil:
			seq, ok := res.(*Sequence)
			if !ok {
				return nil, fmt.Errorf("%w: expected Sequence at %s, got %s", ErrPath, p[:i], res.Kind())
			}
			index := *seg.Index
			if index < 0 || index >= len(seq.Values) {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d) at %s", ErrPath, index, len(seq.Values), p[:i])
			}
			res = OrNull(seq.Values[index])
		case seg.Field != nil:
			m, ok := res.(*Map)
			if !ok {
				return nil, fmt.Errorf("%w: expected Map at %s, got %s", ErrPath, p[:i], res.Kind())
			}
			vv, ok := m.Entries[*seg.Field]
			if !ok {
				return nil, fmt.Errorf("%w: no key %q at %s", ErrPath, *seg.Field, p[:i])
			}
			res = OrNull(vv)
		default:
			return nil, fmt.Errorf("%w: empty segment at %s", ErrPath, p[:i])
		}
	}
	return res, nil
}
