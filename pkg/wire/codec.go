package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// FieldWriter accumulates a length-delimited, field-numbered encoding one
// field at a time. Field numbers are assigned by each shape's Marshal
// method and must never be reused once a released build has shipped them.
// Exported so pkg/contracts (and any other package defining its own wire
// shapes) builds on the same codec pkg/wire's own shapes use, rather than
// reaching for a second serialization scheme.
type FieldWriter struct {
	buf []byte
}

func (w *FieldWriter) PutString(num protowire.Number, s string) {
	if s == "" {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendString(w.buf, s)
}

func (w *FieldWriter) PutBytes(num protowire.Number, b []byte) {
	if len(b) == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, b)
}

func (w *FieldWriter) PutVarint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

// PutRepeatedVarint always writes the tag+value pair, even when v is zero.
// Use this instead of PutVarint for repeated numeric fields where position
// in the sequence is meaningful (e.g. an embedding vector) — PutVarint's
// zero-omission is only safe for scalar fields where a missing tag and an
// explicit zero decode to the same thing.
func (w *FieldWriter) PutRepeatedVarint(num protowire.Number, v uint64) {
	w.buf = protowire.AppendTag(w.buf, num, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

func (w *FieldWriter) PutInt64(num protowire.Number, v int64) {
	w.PutVarint(num, uint64(v))
}

// PutMessage nests an embedded Message under num, length-prefixed.
func (w *FieldWriter) PutMessage(num protowire.Number, m Message) error {
	if m == nil {
		return nil
	}
	inner, err := m.Marshal()
	if err != nil {
		return err
	}
	if len(inner) == 0 {
		return nil
	}
	w.PutBytes(num, inner)
	return nil
}

func (w *FieldWriter) Bytes() []byte { return w.buf }

// FieldVisitor is invoked once per field encountered during a decode walk.
// Implementations type-switch on num and typ, consuming v themselves via
// the protowire.Consume* helpers appropriate to typ.
type FieldVisitor func(num protowire.Number, typ protowire.Type, v []byte) error

// WalkFields decodes a length-delimited field stream, calling visit once per
// field with the remaining bytes starting at that field's value. Unknown
// field numbers are the visitor's responsibility to ignore; WalkFields never
// rejects a field number it doesn't recognize itself, which is what gives
// the format its forward-compatibility guarantee.
func WalkFields(data []byte, visit FieldVisitor) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("intellirouter/wire: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		// Re-slice the value out so the visitor gets exactly its field's
		// bytes; ConsumeFieldValue tells us how much that field occupies.
		valueLen := protowire.ConsumeFieldValue(num, typ, data)
		if valueLen < 0 {
			return fmt.Errorf("intellirouter/wire: malformed field %d: %w", num, protowire.ParseError(valueLen))
		}
		if err := visit(num, typ, data[:valueLen]); err != nil {
			return err
		}
		data = data[valueLen:]
	}
	return nil
}

func ConsumeString(v []byte) (string, error) {
	s, n := protowire.ConsumeString(v)
	if n < 0 {
		return "", fmt.Errorf("intellirouter/wire: malformed string field: %w", protowire.ParseError(n))
	}
	return s, nil
}

func ConsumeBytes(v []byte) ([]byte, error) {
	b, n := protowire.ConsumeBytes(v)
	if n < 0 {
		return nil, fmt.Errorf("intellirouter/wire: malformed bytes field: %w", protowire.ParseError(n))
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func ConsumeVarint(v []byte) (uint64, error) {
	u, n := protowire.ConsumeVarint(v)
	if n < 0 {
		return 0, fmt.Errorf("intellirouter/wire: malformed varint field: %w", protowire.ParseError(n))
	}
	return u, nil
}
