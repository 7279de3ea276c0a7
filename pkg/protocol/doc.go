// Package protocol defines the binary wire format for browser viewport
// reports.
//
// The thin client in the page sends small binary frames over the WebSocket
// whenever the viewport resizes, the device rotates, or the page scrolls.
// Each frame is a 4-byte header followed by a varint-encoded payload:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//	│  Payload (variable length)                                  │
//
// Frame types: Hello (connection setup, carries the initial viewport
// report), Report (viewport metrics), Error (server → client diagnostic
// before close).
//
// Integers are encoded as protobuf-style varints; the orientation angle is
// signed and uses ZigZag encoding. All decode paths validate lengths and
// value ranges before storing anything.
package protocol
