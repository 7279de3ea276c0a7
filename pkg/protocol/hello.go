package protocol

import "errors"

// Version is the current protocol version. The client sends it in the
// Hello frame; the server rejects connections it cannot speak.
const Version = 1

// Hello errors.
var (
	ErrTruncatedHello      = errors.New("protocol: truncated hello payload")
	ErrUnsupportedProtocol = errors.New("protocol: unsupported protocol version")
)

// Hello is the first frame on every connection. It carries the protocol
// version and the client's initial viewport snapshot so the server can
// classify the device before any host event fires.
type Hello struct {
	Version uint8
	Initial Report
}

// EncodeHello serializes a Hello payload.
func EncodeHello(h Hello) []byte {
	buf := make([]byte, 0, 16)
	buf = append(buf, h.Version)
	return AppendReport(buf, h.Initial)
}

// DecodeHello parses a Hello payload, rejecting unknown versions.
func DecodeHello(payload []byte) (Hello, error) {
	if len(payload) < 1 {
		return Hello{}, ErrTruncatedHello
	}
	version := payload[0]
	if version != Version {
		return Hello{}, ErrUnsupportedProtocol
	}

	r, rest, err := decodeReport(payload[1:])
	if err != nil {
		return Hello{}, err
	}
	if len(rest) != 0 {
		return Hello{}, ErrTrailingBytes
	}
	return Hello{Version: version, Initial: r}, nil
}
