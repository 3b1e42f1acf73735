package speech

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// protocolVersion of the binary websocket framing
const protocolVersion = 0b0001

// MessageType identifies a frame
type MessageType uint8

const (
	FullClientRequest  MessageType = 0b0001
	AudioOnlyRequest   MessageType = 0b0010
	FullServerResponse MessageType = 0b1001
	ServerAck          MessageType = 0b1011
	ErrorMessage       MessageType = 0b1111
)

// MessageFlags describe the sequence number that follows the header
type MessageFlags uint8

const (
	NoSequence       MessageFlags = 0b0000
	PositiveSequence MessageFlags = 0b0001
	LastNoSequence   MessageFlags = 0b0010
	NegativeSequence MessageFlags = 0b0011
)

// Serialization of the payload
type Serialization uint8

const (
	RawPayload  Serialization = 0b0000
	JSONPayload Serialization = 0b0001
)

// Compression of the payload
type Compression uint8

const (
	NoCompression   Compression = 0b0000
	GzipCompression Compression = 0b0001
)

// Header is the fixed 4-byte frame header
type Header struct {
	Type          MessageType
	Flags         MessageFlags
	Serialization Serialization
	Compression   Compression
}

// Message is one decoded frame
type Message struct {
	Header    Header
	Sequence  int32
	ErrorCode uint32
	Payload   []byte
}

func (h Header) hasSequence() bool {
	switch h.Flags {
	case PositiveSequence, NegativeSequence:
		return true
	}
	return false
}

// IsLast reports whether the frame closes the stream
func (m *Message) IsLast() bool {
	return m.Header.Flags == LastNoSequence || m.Header.Flags == NegativeSequence
}

// Encode serializes m. The payload is written as is, compress it first.
func (m *Message) Encode() []byte {
	var buf bytes.Buffer

	h := m.Header
	buf.WriteByte(protocolVersion<<4 | 0b0001)
	buf.WriteByte(uint8(h.Type)<<4 | uint8(h.Flags))
	buf.WriteByte(uint8(h.Serialization)<<4 | uint8(h.Compression))
	buf.WriteByte(0)

	if h.hasSequence() {
		_ = binary.Write(&buf, binary.BigEndian, m.Sequence)
	}
	if h.Type == ErrorMessage {
		_ = binary.Write(&buf, binary.BigEndian, m.ErrorCode)
	}
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(m.Payload)))
	buf.Write(m.Payload)

	return buf.Bytes()
}

// DecodeMessage parses one frame
func DecodeMessage(data []byte) (*Message, error) {
	r := bytes.NewReader(data)

	raw := make([]byte, 4)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if version := raw[0] >> 4; version != protocolVersion {
		return nil, fmt.Errorf("unsupported protocol version: %d", version)
	}

	// Header size is counted in 4-byte words, skip any extension
	if extra := int(raw[0]&0x0F)*4 - 4; extra > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(extra)); err != nil {
			return nil, fmt.Errorf("failed to read extended header: %w", err)
		}
	}

	msg := &Message{Header: Header{
		Type:          MessageType(raw[1] >> 4),
		Flags:         MessageFlags(raw[1] & 0x0F),
		Serialization: Serialization(raw[2] >> 4),
		Compression:   Compression(raw[2] & 0x0F),
	}}

	if msg.Header.hasSequence() {
		if err := binary.Read(r, binary.BigEndian, &msg.Sequence); err != nil {
			return nil, fmt.Errorf("failed to read sequence: %w", err)
		}
	}
	if msg.Header.Type == ErrorMessage {
		if err := binary.Read(r, binary.BigEndian, &msg.ErrorCode); err != nil {
			return nil, fmt.Errorf("failed to read error code: %w", err)
		}
	}

	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, fmt.Errorf("failed to read payload size: %w", err)
	}
	if int64(size) > int64(r.Len()) {
		return nil, fmt.Errorf("payload size %d exceeds frame (%d bytes left)", size, r.Len())
	}
	msg.Payload = make([]byte, size)
	if _, err := io.ReadFull(r, msg.Payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	return msg, nil
}

// NewFullClientRequest wraps the JSON session parameters
func NewFullClientRequest(payload []byte) (*Message, error) {
	compressed, err := gzipBytes(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Header:  Header{Type: FullClientRequest, Flags: NoSequence, Serialization: JSONPayload, Compression: GzipCompression},
		Payload: compressed,
	}, nil
}

// NewAudioRequest wraps one audio chunk. The last chunk carries the
// negated sequence number.
func NewAudioRequest(chunk []byte, sequence int32, last bool) (*Message, error) {
	compressed, err := gzipBytes(chunk)
	if err != nil {
		return nil, err
	}

	flags := PositiveSequence
	if last {
		flags = NegativeSequence
		sequence = -sequence
	}

	return &Message{
		Header:   Header{Type: AudioOnlyRequest, Flags: flags, Serialization: RawPayload, Compression: GzipCompression},
		Sequence: sequence,
		Payload:  compressed,
	}, nil
}

// Body returns the decompressed payload
func (m *Message) Body() ([]byte, error) {
	switch m.Header.Compression {
	case NoCompression:
		return m.Payload, nil
	case GzipCompression:
		return gunzipBytes(m.Payload)
	default:
		return nil, fmt.Errorf("unsupported compression method: %d", m.Header.Compression)
	}
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("gzip write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip close failed: %w", err)
	}
	return buf.Bytes(), nil
}

func gunzipBytes(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader creation failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip read failed: %w", err)
	}
	return out, nil
}
