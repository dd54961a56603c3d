package wire

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is registered as a gRPC content-subtype so every call on the
// fabric negotiates this package's encoding instead of gRPC's default
// protobuf codec, which would require protoc-generated message types this
// module deliberately has none of.
const codecName = "intellirouter"

// grpcCodec adapts wire.Message to gRPC's encoding.Codec. Only Envelope
// (a types.CallEnvelope wrapped as a Message) travels over the RPCs
// pkg/transport defines, so Marshal and Unmarshal only ever see *Envelope
// in practice, but the adapter
// accepts any wire.Message for testability.
type grpcCodec struct{}

func (grpcCodec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("intellirouter/wire: %T does not implement wire.Message", v)
	}
	return m.Marshal()
}

func (grpcCodec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("intellirouter/wire: %T does not implement wire.Message", v)
	}
	return m.Unmarshal(data)
}

func (grpcCodec) Name() string { return codecName }

// RegisterGRPCCodec installs this package's codec under codecName so
// pkg/transport can select it via grpc.CallContentSubtype / the server's
// default codec. Safe to call more than once; encoding.RegisterCodec
// overwrites any prior registration under the same name.
func RegisterGRPCCodec() {
	encoding.RegisterCodec(grpcCodec{})
}

// CodecName returns the content-subtype name this package registers under.
func CodecName() string { return codecName }
