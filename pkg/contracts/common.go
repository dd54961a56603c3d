package contracts

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/wire"
)

// metadataPair is the repeated-field shape backing every string-to-string
// metadata map a contract request/response carries, mirroring pkg/wire's
// own internal kv shape.
type metadataPair struct {
	key   string
	value string
}

func (p metadataPair) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, p.key)
	w.PutString(2, p.value)
	return w.Bytes(), nil
}

func (p *metadataPair) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			p.key = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			p.value = s
		}
		return nil
	})
}

// float32Bits and float32FromBits round-trip an embedding component through
// the field codec's varint encoding, since the codec has no native fixed32
// writer.
func float32Bits(f float32) uint32      { return math.Float32bits(f) }
func float32FromBits(u uint32) float32 { return math.Float32frombits(u) }
