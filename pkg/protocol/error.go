package protocol

import "errors"

// ErrorCode categorizes a server-side protocol error.
type ErrorCode uint8

const (
	ErrCodeMalformedFrame ErrorCode = 0x01 // Frame failed to decode
	ErrCodeBadReport      ErrorCode = 0x02 // Report payload rejected
	ErrCodeBadHandshake   ErrorCode = 0x03 // Hello missing or unsupported
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeMalformedFrame:
		return "MalformedFrame"
	case ErrCodeBadReport:
		return "BadReport"
	case ErrCodeBadHandshake:
		return "BadHandshake"
	default:
		return "Unknown"
	}
}

// MaxErrorMessageLen caps the diagnostic message carried in an error frame.
const MaxErrorMessageLen = 512

// ErrTruncatedError reports a short or inconsistent error payload.
var ErrTruncatedError = errors.New("protocol: truncated error payload")

// ErrorMessage is the payload of an Error frame, sent server → client as a
// diagnostic before the connection is closed or the frame is dropped.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
}

// EncodeError serializes an error payload. Over-long messages are
// truncated rather than rejected; the frame is best-effort diagnostics.
func EncodeError(e ErrorMessage) []byte {
	msg := e.Message
	if len(msg) > MaxErrorMessageLen {
		msg = msg[:MaxErrorMessageLen]
	}

	buf := make([]byte, 0, 2+len(msg))
	buf = append(buf, byte(e.Code))
	buf = AppendUvarint(buf, uint64(len(msg)))
	return append(buf, msg...)
}

// DecodeError parses an error payload.
func DecodeError(payload []byte) (ErrorMessage, error) {
	if len(payload) < 1 {
		return ErrorMessage{}, ErrTruncatedError
	}
	code := ErrorCode(payload[0])
	payload = payload[1:]

	length, n := DecodeUvarint(payload)
	if n < 0 || length > MaxErrorMessageLen {
		return ErrorMessage{}, ErrTruncatedError
	}
	payload = payload[n:]
	if uint64(len(payload)) != length {
		return ErrorMessage{}, ErrTruncatedError
	}

	return ErrorMessage{Code: code, Message: string(payload)}, nil
}
