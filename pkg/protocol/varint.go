package protocol

// MaxVarintLen is the maximum number of bytes a varint can occupy.
// A uint64 requires at most 10 bytes in varint encoding.
const MaxVarintLen = 10

// AppendUvarint appends v to buf in protobuf-style varint encoding:
// 7 bits of data per byte, MSB indicates continuation.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// DecodeUvarint decodes an unsigned varint from buf.
// Returns (value, bytesRead). If bytesRead < 0, decoding failed:
//   - -1: buffer too short (incomplete varint)
//   - -2: varint overflow (more than 10 bytes)
func DecodeUvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint

	for i, b := range buf {
		if i >= MaxVarintLen {
			return 0, -2 // Overflow
		}
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, i + 1
		}
		shift += 7
	}
	return 0, -1 // Incomplete
}

// AppendSvarint appends a signed integer using ZigZag encoding.
// ZigZag maps signed integers to unsigned: 0->0, -1->1, 1->2, -2->3.
func AppendSvarint(buf []byte, v int64) []byte {
	uv := uint64((v << 1) ^ (v >> 63))
	return AppendUvarint(buf, uv)
}

// DecodeSvarint decodes a ZigZag-encoded signed varint from buf.
// The bytesRead result follows the DecodeUvarint convention.
func DecodeSvarint(buf []byte) (int64, int) {
	uv, n := DecodeUvarint(buf)
	if n < 0 {
		return 0, n
	}
	v := int64(uv >> 1)
	if uv&1 != 0 {
		v = ^v
	}
	return v, n
}
