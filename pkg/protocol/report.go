package protocol

import "errors"

// ReportKind identifies which host event produced a viewport report.
type ReportKind uint8

const (
	KindResize      ReportKind = 0x01
	KindOrientation ReportKind = 0x02
	KindScroll      ReportKind = 0x03
)

// String returns the string representation of the report kind.
func (k ReportKind) String() string {
	switch k {
	case KindResize:
		return "Resize"
	case KindOrientation:
		return "Orientation"
	case KindScroll:
		return "Scroll"
	default:
		return "Unknown"
	}
}

// MaxDimension caps every reported pixel value. Values above it are
// rejected as malformed rather than stored.
const MaxDimension = 1 << 20

// Report decoding errors.
var (
	ErrTruncatedReport = errors.New("protocol: truncated report payload")
	ErrTrailingBytes   = errors.New("protocol: trailing bytes after report")
	ErrInvalidKind     = errors.New("protocol: invalid report kind")
	ErrValueOutOfRange = errors.New("protocol: report value out of range")
)

// Report carries one snapshot of the client viewport.
type Report struct {
	// Kind is the host event that produced the report.
	Kind ReportKind

	// Viewport dimensions in pixels.
	Width  int
	Height int

	// Angle is the host orientation angle in degrees. 0 = portrait.
	Angle int

	// Scroll offsets in pixels.
	ScrollTop  int
	ScrollLeft int

	// Touch reports whether the device has a touch screen.
	Touch bool
}

// AppendReport appends the wire encoding of r to buf.
//
// Layout: kind (1 byte), width, height, scrollTop, scrollLeft (uvarints),
// angle (ZigZag svarint), touch (1 byte).
func AppendReport(buf []byte, r Report) []byte {
	buf = append(buf, byte(r.Kind))
	buf = AppendUvarint(buf, uint64(r.Width))
	buf = AppendUvarint(buf, uint64(r.Height))
	buf = AppendUvarint(buf, uint64(r.ScrollTop))
	buf = AppendUvarint(buf, uint64(r.ScrollLeft))
	buf = AppendSvarint(buf, int64(r.Angle))
	if r.Touch {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

// DecodeReport parses a report payload. The whole payload must be consumed;
// trailing bytes are an error.
func DecodeReport(payload []byte) (Report, error) {
	r, rest, err := decodeReport(payload)
	if err != nil {
		return Report{}, err
	}
	if len(rest) != 0 {
		return Report{}, ErrTrailingBytes
	}
	return r, nil
}

// decodeReport parses one report from the front of payload and returns the
// unread remainder.
func decodeReport(payload []byte) (Report, []byte, error) {
	if len(payload) < 1 {
		return Report{}, nil, ErrTruncatedReport
	}

	kind := ReportKind(payload[0])
	switch kind {
	case KindResize, KindOrientation, KindScroll:
	default:
		return Report{}, nil, ErrInvalidKind
	}
	payload = payload[1:]

	var r Report
	r.Kind = kind

	for _, dst := range []*int{&r.Width, &r.Height, &r.ScrollTop, &r.ScrollLeft} {
		v, n := DecodeUvarint(payload)
		if n < 0 {
			return Report{}, nil, ErrTruncatedReport
		}
		if v > MaxDimension {
			return Report{}, nil, ErrValueOutOfRange
		}
		*dst = int(v)
		payload = payload[n:]
	}

	angle, n := DecodeSvarint(payload)
	if n < 0 {
		return Report{}, nil, ErrTruncatedReport
	}
	if angle < -360 || angle > 360 {
		return Report{}, nil, ErrValueOutOfRange
	}
	r.Angle = int(angle)
	payload = payload[n:]

	if len(payload) < 1 {
		return Report{}, nil, ErrTruncatedReport
	}
	r.Touch = payload[0] != 0
	return r, payload[1:], nil
}
