package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioRequestLastChunkIsNegative(t *testing.T) {
	msg, err := NewAudioRequest([]byte("pcm"), 7, true)
	require.NoError(t, err)

	decoded, err := DecodeMessage(msg.Encode())
	require.NoError(t, err)

	assert.Equal(t, AudioOnlyRequest, decoded.Header.Type)
	assert.Equal(t, NegativeSequence, decoded.Header.Flags)
	assert.Equal(t, int32(-7), decoded.Sequence)
	assert.True(t, decoded.IsLast())

	body, err := decoded.Body()
	require.NoError(t, err)
	assert.Equal(t, []byte("pcm"), body)
}

func TestFullClientRequestHasNoSequence(t *testing.T) {
	msg, err := NewFullClientRequest([]byte(`{"a":1}`))
	require.NoError(t, err)

	encoded := msg.Encode()
	assert.Equal(t, byte(0x11), encoded[0])
	assert.Equal(t, byte(0x10), encoded[1])
	assert.Equal(t, byte(0x11), encoded[2])

	decoded, err := DecodeMessage(encoded)
	require.NoError(t, err)
	assert.False(t, decoded.IsLast())
	assert.Zero(t, decoded.Sequence)
}

func TestErrorMessageCarriesCode(t *testing.T) {
	msg := &Message{
		Header:    Header{Type: ErrorMessage, Flags: NoSequence},
		ErrorCode: 45000001,
		Payload:   []byte("bad request"),
	}

	decoded, err := DecodeMessage(msg.Encode())
	require.NoError(t, err)

	assert.Equal(t, uint32(45000001), decoded.ErrorCode)
	body, err := decoded.Body()
	require.NoError(t, err)
	assert.Equal(t, "bad request", string(body))
}

func TestDecodeMessageErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "short header", data: []byte{0x11, 0x90}},
		{name: "wrong version", data: []byte{0x21, 0x90, 0x10, 0x00, 0, 0, 0, 0}},
		{name: "missing size", data: []byte{0x11, 0x90, 0x10, 0x00}},
		{name: "truncated payload", data: []byte{0x11, 0x90, 0x10, 0x00, 0, 0, 0, 9, 'a'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.data)
			assert.Error(t, err)
		})
	}
}
