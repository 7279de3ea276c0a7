package protocol

import (
	"encoding/binary"
	"errors"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello  FrameType = 0x00 // Connection setup, carries initial report
	FrameReport FrameType = 0x01 // Client → Server viewport report
	FrameError  FrameType = 0x02 // Server → Client error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameReport:
		return "Report"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are optional flags for frame processing.
type FrameFlags uint8

const (
	// FlagCoalesced marks a report that merges several rapid host events
	// (the client debounces resize storms into one frame).
	FlagCoalesced FrameFlags = 0x01
)

// Has returns true if the flags contain the specified flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrFrameTooShort    = errors.New("protocol: frame shorter than header")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
	ErrLengthMismatch   = errors.New("protocol: payload length mismatch")
)

// Frame is a protocol frame with header and payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// EncodeFrame serializes a frame to its wire representation.
func EncodeFrame(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}

	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(f.Payload)))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame parses a wire message into a frame. The returned payload
// references the input buffer; callers must not retain it past the next
// read.
func DecodeFrame(msg []byte) (Frame, error) {
	if len(msg) < FrameHeaderSize {
		return Frame{}, ErrFrameTooShort
	}

	ft := FrameType(msg[0])
	switch ft {
	case FrameHello, FrameReport, FrameError:
	default:
		return Frame{}, ErrInvalidFrameType
	}

	length := int(binary.BigEndian.Uint16(msg[2:4]))
	if len(msg) != FrameHeaderSize+length {
		return Frame{}, ErrLengthMismatch
	}

	return Frame{
		Type:    ft,
		Flags:   FrameFlags(msg[1]),
		Payload: msg[FrameHeaderSize:],
	}, nil
}
