package wire

import (
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestEnvelope_RoundTrips(t *testing.T) {
	in := Envelope{types.CallEnvelope{Token: "tok-123", Payload: []byte("hello fabric")}}

	data, err := in.Marshal()
	require.NoError(t, err)

	var out Envelope
	require.NoError(t, out.Unmarshal(data))
	assert.Equal(t, in, out)
}

func TestEnvelope_EmptyFieldsOmittedButRoundTrip(t *testing.T) {
	in := Envelope{types.CallEnvelope{}}

	data, err := in.Marshal()
	require.NoError(t, err)
	assert.Empty(t, data)

	var out Envelope
	require.NoError(t, out.Unmarshal(data))
	assert.Equal(t, in, out)
}

func TestRequestContext_RoundTrips(t *testing.T) {
	rc := types.RequestContext{
		RequestID:    "req-1",
		TenantID:     "tenant-a",
		CorrelatedAt: time.Unix(1700000000, 0).UTC(),
		Priority:     7,
		Tags:         []string{"urgent", "retry"},
		Metadata:     map[string]string{"trace": "abc", "region": "us-east"},
	}

	data, err := MarshalRequestContext(rc)
	require.NoError(t, err)

	out, err := UnmarshalRequestContext(data)
	require.NoError(t, err)
	assert.Equal(t, rc, out)
}

func TestRequestContext_ZeroValueRoundTrips(t *testing.T) {
	data, err := MarshalRequestContext(types.RequestContext{})
	require.NoError(t, err)

	out, err := UnmarshalRequestContext(data)
	require.NoError(t, err)
	assert.Equal(t, types.RequestContext{}, out)
}

func TestChatMessage_RoundTrips(t *testing.T) {
	msg := ChatMessage{
		Role:      "assistant",
		Content:   "how can I help?",
		Timestamp: time.Unix(1700000001, 0).UTC(),
		Metadata:  map[string]string{"model": "gpt-4"},
	}

	data, err := msg.Marshal()
	require.NoError(t, err)

	var out ChatMessage
	require.NoError(t, out.Unmarshal(data))
	assert.Equal(t, msg, out)
}

func TestModelInfoV2_RoundTripsAndSkipsUnknownFields(t *testing.T) {
	info := ModelInfoV2{
		ID:              "gpt-4",
		Provider:        "openai",
		ContextWindow:   128000,
		MaxOutputTokens: 4096,
		DeprecatedAlias: "gpt-4-legacy",
	}

	data, err := info.Marshal()
	require.NoError(t, err)

	// Append an unrecognized field (number 9) after the known fields; a
	// decoder must skip it rather than fail, the forward-compatibility
	// guarantee WalkFields documents.
	w := FieldWriter{buf: append([]byte{}, data...)}
	w.PutString(9, "future-field")

	var out ModelInfoV2
	require.NoError(t, out.Unmarshal(w.Bytes()))
	assert.Equal(t, info, out)
}

func TestModelInfo_ToV2AndBack(t *testing.T) {
	v1 := ModelInfo{ID: "claude-3", Provider: "anthropic", ContextWindow: 200000}
	v2 := v1.ToV2()
	assert.Equal(t, v1, v2.ToV1())
}

func TestErrorDetails_RoundTrips(t *testing.T) {
	ed := ErrorDetails{Kind: "transport", Reason: "connection refused", RemoteCode: "Unavailable"}

	data, err := ed.Marshal()
	require.NoError(t, err)

	var out ErrorDetails
	require.NoError(t, out.Unmarshal(data))
	assert.Equal(t, ed, out)
}

func TestWalkFields_MalformedTagErrors(t *testing.T) {
	err := WalkFields([]byte{0xFF}, func(num protowire.Number, typ protowire.Type, v []byte) error {
		return nil
	})
	assert.Error(t, err)
}
