package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/treediff/ir"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

const (
	TextTag      = "!text"
	CounterTag   = "!counter"
	TimestampTag = "!timestamp"
	UintTag      = "!uint"
	F32Tag       = "!f32"
	TableTag     = "!table"
	CursorTag    = "!cursor"
)

// Parse parses a single YAML document into a value tree.  An empty
// document is null.
func Parse(d []byte, opts ...ParseOption) (ir.Value, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return ir.Null(), nil
	}
	if len(f.Docs) > 1 {
		return nil, fmt.Errorf("%w: expected 1 document, got %d", ErrParse, len(f.Docs))
	}
	return o.node(f.Docs[0].Body)
}

func (o *parseOpts) node(n ast.Node) (ir.Value, error) {
	switch x := n.(type) {
	case *ast.TagNode:
		return o.tagged(x.Start.Value, x.Value)
	case *ast.AnchorNode:
		return o.node(x.Value)
	case *ast.CommentGroupNode:
		return ir.Null(), nil
	case *ast.MappingNode:
		return o.mapping(x.Values)
	case *ast.MappingValueNode:
		return o.mapping([]*ast.MappingValueNode{x})
	case *ast.SequenceNode:
		vs := make([]ir.Value, 0, len(x.Values))
		for _, vn := range x.Values {
			v, err := o.node(vn)
			if err != nil {
				return nil, err
			}
			vs = append(vs, v)
		}
		return ir.FromSlice(vs), nil
	case *ast.NullNode:
		return ir.Null(), nil
	case *ast.BoolNode:
		return ir.FromBool(x.Value), nil
	case *ast.IntegerNode:
		switch i := x.Value.(type) {
		case int64:
			return ir.FromInt(i), nil
		case uint64:
			if i > math.MaxInt64 {
				return ir.FromUint(i), nil
			}
			return ir.FromInt(int64(i)), nil
		}
		return nil, fmt.Errorf("%w: integer %q", ErrParse, x.GetToken().Value)
	case *ast.FloatNode:
		return ir.FromFloat(x.Value), nil
	case *ast.InfinityNode:
		return ir.FromFloat(x.Value), nil
	case *ast.NanNode:
		return ir.FromFloat(math.NaN()), nil
	case *ast.StringNode:
		return o.str(x.Value), nil
	case *ast.LiteralNode:
		return o.str(x.Value.Value), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Type())
}

func (o *parseOpts) str(s string) ir.Value {
	if o.textStrings {
		return ir.FromText(s)
	}
	return ir.FromString(s)
}

func (o *parseOpts) mapping(mvs []*ast.MappingValueNode) (*ir.Map, error) {
	res := ir.FromMap(make(map[string]ir.Value, len(mvs)))
	for _, mv := range mvs {
		k, err := key(mv.Key)
		if err != nil {
			return nil, err
		}
		if _, dup := res.Entries[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, k)
		}
		v, err := o.node(mv.Value)
		if err != nil {
			return nil, err
		}
		res.Entries[k] = v
	}
	return res, nil
}

func key(n ast.Node) (string, error) {
	switch x := n.(type) {
	case *ast.StringNode:
		return x.Value, nil
	case *ast.TagNode:
		return "", ErrKeyTag
	case nil:
		return "", fmt.Errorf("%w: missing key", ErrParse)
	}
	tok := n.GetToken()
	if tok == nil {
		return "", fmt.Errorf("%w: key %s", ErrUnsupported, n.Type())
	}
	return tok.Value, nil
}

func (o *parseOpts) tagged(tag string, n ast.Node) (ir.Value, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: %s without a value", ErrParse, tag)
	}
	switch tag {
	case TableTag:
		mvs := []*ast.MappingValueNode{}
		switch x := n.(type) {
		case *ast.MappingNode:
			mvs = x.Values
		case *ast.MappingValueNode:
			mvs = append(mvs, x)
		default:
			return nil, fmt.Errorf("%w: %s on %s", ErrParse, tag, n.Type())
		}
		m, err := o.mapping(mvs)
		if err != nil {
			return nil, err
		}
		m.Type = ir.TableMap
		return m, nil
	case TextTag:
		s, err := tagString(tag, n)
		if err != nil {
			return nil, err
		}
		return ir.FromText(s), nil
	case CursorTag:
		s, err := tagString(tag, n)
		if err != nil {
			return nil, err
		}
		c, err := ir.ParseCursor(s)
		if err != nil {
			return nil, err
		}
		return ir.FromCursor(c), nil
	case CounterTag, TimestampTag:
		i, err := tagInt(tag, n)
		if err != nil {
			return nil, err
		}
		if tag == CounterTag {
			return ir.FromCounter(i), nil
		}
		return ir.FromTimestamp(i), nil
	case UintTag:
		lit, err := tagScalar(tag, n)
		if err != nil {
			return nil, err
		}
		u, err := strconv.ParseUint(lit, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, tag, err)
		}
		return ir.FromUint(u), nil
	case F32Tag:
		lit, err := tagScalar(tag, n)
		if err != nil {
			return nil, err
		}
		f, err := parseFloat32(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, tag, err)
		}
		return ir.FromFloat32(f), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTag, tag)
}

// tagString returns the string under tag.  Plain scalars which would
// resolve to something other than a string without the tag, such as
// !text 3, are rejected.
func tagString(tag string, n ast.Node) (string, error) {
	switch x := n.(type) {
	case *ast.StringNode:
		if tk := x.GetToken(); tk != nil && tk.Type == token.StringType {
			if token.New(tk.Value, tk.Origin, tk.Position).Type != token.StringType {
				return "", fmt.Errorf("%w: %s on unquoted %q", ErrParse, tag, tk.Value)
			}
		}
		return x.Value, nil
	case *ast.LiteralNode:
		return x.Value.Value, nil
	}
	return "", fmt.Errorf("%w: %s on %s", ErrParse, tag, n.Type())
}

// tagScalar returns the literal text of the scalar under tag.  Values of
// local tags are scanned as strings, so numbers arrive as string nodes.
func tagScalar(tag string, n ast.Node) (string, error) {
	switch n.(type) {
	case *ast.StringNode, *ast.IntegerNode, *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
	default:
		return "", fmt.Errorf("%w: %s on %s", ErrParse, tag, n.Type())
	}
	tk := n.GetToken()
	if tk == nil {
		return "", fmt.Errorf("%w: %s without a value", ErrParse, tag)
	}
	return tk.Value, nil
}

func tagInt(tag string, n ast.Node) (int64, error) {
	lit, err := tagScalar(tag, n)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrParse, tag, err)
	}
	return i, nil
}

func parseFloat32(lit string) (float32, error) {
	switch strings.ToLower(lit) {
	case ".nan":
		return float32(math.NaN()), nil
	case ".inf", "+.inf":
		return float32(math.Inf(1)), nil
	case "-.inf":
		return float32(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(lit, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}
