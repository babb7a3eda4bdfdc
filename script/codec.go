package script

import (
	"fmt"

	"github.com/signadot/treediff/ir"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes s as MessagePack for handing to an engine in another
// process.
func Marshal(s Script) ([]byte, error) {
	ws := make([]wireOp, len(s))
	for i := range s {
		ws[i] = toWireOp(&s[i])
	}
	return msgpack.Marshal(ws)
}

// Unmarshal decodes a script produced by [Marshal].
func Unmarshal(d []byte) (Script, error) {
	var ws []wireOp
	if err := msgpack.Unmarshal(d, &ws); err != nil {
		return nil, err
	}
	res := make(Script, len(ws))
	for i := range ws {
		op, err := fromWireOp(&ws[i])
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		res[i] = op
	}
	return res, nil
}

type wireOp struct {
	Type  uint8      `msgpack:"t"`
	Path  []wireSeg  `msgpack:"p"`
	Key   string     `msgpack:"k"`
	Index int        `msgpack:"i"`
	Count int        `msgpack:"n"`
	Value *wireValue `msgpack:"v"`
	Text  []string   `msgpack:"x"`
	Delta int64      `msgpack:"d"`
}

type wireSeg struct {
	Field *string `msgpack:"f"`
	Index *int    `msgpack:"i"`
}

type wireValue struct {
	Kind    uint8                 `msgpack:"k"`
	Type    uint8                 `msgpack:"t"`
	Entries map[string]*wireValue `msgpack:"e,omitempty"`
	Values  []*wireValue          `msgpack:"v,omitempty"`
	Text    []string              `msgpack:"x,omitempty"`
	String  string                `msgpack:"s"`
	Int64   int64                 `msgpack:"i"`
	Uint64  uint64                `msgpack:"u"`
	Float64 float64               `msgpack:"f"`
	Float32 float32               `msgpack:"g"`
	Bool    bool                  `msgpack:"b"`
	Cursor  ir.Cursor             `msgpack:"c"`
}

func toWireOp(op *Op) wireOp {
	res := wireOp{
		Type:  uint8(op.Type),
		Path:  make([]wireSeg, len(op.Path)),
		Key:   op.Key,
		Index: op.Index,
		Count: op.Count,
		Text:  op.Text,
		Delta: op.Delta,
	}
	for i, seg := range op.Path {
		res.Path[i] = wireSeg{Field: seg.Field, Index: seg.Index}
	}
	if op.Value != nil {
		res.Value = toWireValue(op.Value)
	}
	return res
}

func fromWireOp(w *wireOp) (Op, error) {
	if _, ok := opTypeNames[OpType(w.Type)]; !ok {
		return Op{}, fmt.Errorf("unknown op type %d", w.Type)
	}
	res := Op{
		Type:  OpType(w.Type),
		Path:  make(ir.Path, len(w.Path)),
		Key:   w.Key,
		Index: w.Index,
		Count: w.Count,
		Text:  w.Text,
		Delta: w.Delta,
	}
	for i, seg := range w.Path {
		if (seg.Field == nil) == (seg.Index == nil) {
			return Op{}, fmt.Errorf("path segment %d must have exactly one of field and index", i)
		}
		res.Path[i] = ir.Segment{Field: seg.Field, Index: seg.Index}
	}
	if w.Value != nil {
		v, err := fromWireValue(w.Value)
		if err != nil {
			return Op{}, err
		}
		res.Value = v
	}
	return res, nil
}

func toWireValue(v ir.Value) *wireValue {
	res := &wireValue{Kind: uint8(v.Kind())}
	switch x := v.(type) {
	case *ir.Map:
		res.Type = uint8(x.Type)
		res.Entries = make(map[string]*wireValue, len(x.Entries))
		for k, vv := range x.Entries {
			res.Entries[k] = toWireValue(ir.OrNull(vv))
		}
	case *ir.Sequence:
		res.Values = make([]*wireValue, len(x.Values))
		for i, vv := range x.Values {
			res.Values[i] = toWireValue(ir.OrNull(vv))
		}
	case *ir.Text:
		res.Text = x.Graphemes
	case *ir.Scalar:
		res.Type = uint8(x.Type)
		res.String = x.String
		res.Int64 = x.Int64
		res.Uint64 = x.Uint64
		res.Float64 = x.Float64
		res.Float32 = x.Float32
		res.Bool = x.Bool
		res.Cursor = x.Cursor
	}
	return res
}

func fromWireValue(w *wireValue) (ir.Value, error) {
	switch ir.Kind(w.Kind) {
	case ir.MapKind:
		m := &ir.Map{Type: ir.MapType(w.Type), Entries: make(map[string]ir.Value, len(w.Entries))}
		for k, wv := range w.Entries {
			if wv == nil {
				m.Entries[k] = ir.Null()
				continue
			}
			v, err := fromWireValue(wv)
			if err != nil {
				return nil, err
			}
			m.Entries[k] = v
		}
		return m, nil
	case ir.SequenceKind:
		vs := make([]ir.Value, len(w.Values))
		for i, wv := range w.Values {
			if wv == nil {
				vs[i] = ir.Null()
				continue
			}
			v, err := fromWireValue(wv)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return ir.FromSlice(vs), nil
	case ir.TextKind:
		return ir.FromGraphemes(w.Text), nil
	case ir.ScalarKind:
		return &ir.Scalar{
			Type:    ir.ScalarType(w.Type),
			String:  w.String,
			Int64:   w.Int64,
			Uint64:  w.Uint64,
			Float64: w.Float64,
			Float32: w.Float32,
			Bool:    w.Bool,
			Cursor:  w.Cursor,
		}, nil
	}
	return nil, fmt.Errorf("unknown value kind %d", w.Kind)
}
