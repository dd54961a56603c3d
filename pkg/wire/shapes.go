package wire

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/types"
)

// kv is the repeated-field shape backing every string-to-string metadata map
// on the wire.
type kv struct {
	key   string
	value string
}

func (p kv) marshal() []byte {
	w := FieldWriter{}
	w.PutString(1, p.key)
	w.PutString(2, p.value)
	return w.Bytes()
}

func (p *kv) unmarshal(b []byte) error {
	return WalkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			p.key = s
		case 2:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			p.value = s
		}
		return nil
	})
}

// Envelope is the gRPC wire message for every RPC pkg/transport defines: it
// wraps types.CallEnvelope so the grpc codec has a concrete Message to
// Marshal/Unmarshal on both the client and server side of a call.
type Envelope struct {
	types.CallEnvelope
}

// Marshal encodes the envelope: field 1 token, field 2 payload.
func (e Envelope) Marshal() ([]byte, error) {
	w := FieldWriter{}
	w.PutString(1, e.Token)
	w.PutBytes(2, e.Payload)
	return w.Bytes(), nil
}

// Unmarshal decodes bytes produced by Marshal. Unknown fields are skipped
// so an older reader can consume a newer writer's envelope.
func (e *Envelope) Unmarshal(data []byte) error {
	return WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			e.Token = s
		case 2:
			b, err := ConsumeBytes(v)
			if err != nil {
				return err
			}
			e.Payload = b
		}
		return nil
	})
}

// MarshalRequestContext encodes a RequestContext.
func MarshalRequestContext(rc types.RequestContext) ([]byte, error) {
	w := FieldWriter{}
	w.PutString(1, rc.RequestID)
	w.PutString(2, rc.TenantID)
	if !rc.CorrelatedAt.IsZero() {
		w.PutInt64(3, rc.CorrelatedAt.UnixNano())
	}
	w.PutVarint(4, uint64(rc.Priority))
	for _, tag := range rc.Tags {
		w.PutString(5, tag)
	}
	for k, v := range rc.Metadata {
		pair := kv{key: k, value: v}
		w.PutBytes(6, pair.marshal())
	}
	return w.Bytes(), nil
}

// UnmarshalRequestContext decodes bytes produced by MarshalRequestContext.
func UnmarshalRequestContext(data []byte) (types.RequestContext, error) {
	var rc types.RequestContext
	var correlatedNano int64
	err := WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			rc.RequestID = s
		case 2:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			rc.TenantID = s
		case 3:
			u, err := ConsumeVarint(v)
			if err != nil {
				return err
			}
			correlatedNano = int64(u)
		case 4:
			u, err := ConsumeVarint(v)
			if err != nil {
				return err
			}
			rc.Priority = int(u)
		case 5:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			rc.Tags = append(rc.Tags, s)
		case 6:
			b, err := ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair kv
			if err := pair.unmarshal(b); err != nil {
				return err
			}
			if rc.Metadata == nil {
				rc.Metadata = make(map[string]string)
			}
			rc.Metadata[pair.key] = pair.value
		}
		return nil
	})
	if correlatedNano != 0 {
		rc.CorrelatedAt = time.Unix(0, correlatedNano).UTC()
	}
	return rc, err
}

// Status is the small, closed set of outcome codes carried alongside a
// response payload, independent of the transport-level RemoteStatus a gRPC
// call itself returns.
type Status int32

const (
	StatusOK                Status = 0
	StatusNotFound          Status = 1
	StatusInvalidArgument   Status = 2
	StatusInternal          Status = 3
	StatusUnauthorized      Status = 4
	StatusPermissionDenied  Status = 5
	StatusUnavailable       Status = 6
)

// ErrorDetails is the wire shape carried back when Status != StatusOK. It
// mirrors the fields types.IpcFailure classifies on, so a receiver can
// reconstruct an IpcFailure without inspecting transport-level status text.
type ErrorDetails struct {
	Kind       string
	Reason     string
	RemoteCode string
}

func (e ErrorDetails) Marshal() ([]byte, error) {
	w := FieldWriter{}
	w.PutString(1, e.Kind)
	w.PutString(2, e.Reason)
	w.PutString(3, e.RemoteCode)
	return w.Bytes(), nil
}

func (e *ErrorDetails) Unmarshal(data []byte) error {
	return WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			e.Kind = s
		case 2:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			e.Reason = s
		case 3:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			e.RemoteCode = s
		}
		return nil
	})
}

// ChatMessage is a single turn in a model conversation: role, content,
// emission time, and free-form metadata. It is the payload shape the Chain
// Engine and Persona Layer contracts exchange.
type ChatMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
	Metadata  map[string]string
}

func (m ChatMessage) Marshal() ([]byte, error) {
	w := FieldWriter{}
	w.PutString(1, m.Role)
	w.PutString(2, m.Content)
	w.PutInt64(3, m.Timestamp.UnixNano())
	for k, v := range m.Metadata {
		pair := kv{key: k, value: v}
		w.PutBytes(4, pair.marshal())
	}
	return w.Bytes(), nil
}

func (m *ChatMessage) Unmarshal(data []byte) error {
	var nano int64
	err := WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			m.Role = s
		case 2:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			m.Content = s
		case 3:
			u, err := ConsumeVarint(v)
			if err != nil {
				return err
			}
			nano = int64(u)
		case 4:
			b, err := ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair kv
			if err := pair.unmarshal(b); err != nil {
				return err
			}
			if m.Metadata == nil {
				m.Metadata = make(map[string]string)
			}
			m.Metadata[pair.key] = pair.value
		}
		return nil
	})
	if nano != 0 {
		m.Timestamp = time.Unix(0, nano).UTC()
	}
	return err
}

// ModelInfoV2 is the current Model Registry entry shape. Field 3,
// context_window, and field 6 are documented below for the forward-
// compatibility story spec §6 requires of this format:
//
//   1  id                string
//   2  provider          string
//   3  context_window    varint  (tokens)
//   4  max_output_tokens varint  -- added after v1 shipped; a v1 reader
//                                   simply never sees it, an empty value
//                                   decodes as zero.
//   5  deprecated_alias  string  -- added alongside 4, optional.
//   6  (reserved)        -- carried a v1 "legacy_cost_per_token" fixed64
//                            field, retired; never reassign 6.
type ModelInfoV2 struct {
	ID               string
	Provider         string
	ContextWindow    int
	MaxOutputTokens  int
	DeprecatedAlias  string
}

func (m ModelInfoV2) Marshal() ([]byte, error) {
	w := FieldWriter{}
	w.PutString(1, m.ID)
	w.PutString(2, m.Provider)
	w.PutVarint(3, uint64(m.ContextWindow))
	w.PutVarint(4, uint64(m.MaxOutputTokens))
	w.PutString(5, m.DeprecatedAlias)
	return w.Bytes(), nil
}

func (m *ModelInfoV2) Unmarshal(data []byte) error {
	return WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			m.ID = s
		case 2:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			m.Provider = s
		case 3:
			u, err := ConsumeVarint(v)
			if err != nil {
				return err
			}
			m.ContextWindow = int(u)
		case 4:
			u, err := ConsumeVarint(v)
			if err != nil {
				return err
			}
			m.MaxOutputTokens = int(u)
		case 5:
			s, err := ConsumeString(v)
			if err != nil {
				return err
			}
			m.DeprecatedAlias = s
		}
		// field 6 and any number this build doesn't recognize fall through
		// the switch above and are ignored.
		return nil
	})
}

// ModelInfo is the v1 shape, kept so a v1 caller linked against this module
// version still compiles; ToV2/FromV2 are the only supported conversion
// path, there is no implicit wire compatibility shim beyond field skipping.
type ModelInfo struct {
	ID            string
	Provider      string
	ContextWindow int
}

func (m ModelInfo) ToV2() ModelInfoV2 {
	return ModelInfoV2{ID: m.ID, Provider: m.Provider, ContextWindow: m.ContextWindow}
}

func (v2 ModelInfoV2) ToV1() ModelInfo {
	return ModelInfo{ID: v2.ID, Provider: v2.Provider, ContextWindow: v2.ContextWindow}
}
