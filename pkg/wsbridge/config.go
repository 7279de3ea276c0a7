package wsbridge

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds configuration for the WebSocket bridge.
type Config struct {
	// Timeouts

	// HandshakeTimeout is the maximum time to wait for the Hello frame.
	// Default: 10 seconds.
	HandshakeTimeout time.Duration

	// ReadTimeout is the maximum time to wait for a message from the
	// client. Pongs extend the deadline. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	PingInterval time.Duration

	// Limits

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Reports are tiny; the default of 1KB is generous.
	MaxMessageSize int64

	// WebSocket buffer sizes

	// ReadBufferSize is the WebSocket read buffer size. Default: 1024.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size. Default: 1024.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin.
	// Default: same-origin only (the websocket package's default).
	CheckOrigin func(r *http.Request) bool

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		PingInterval:     30 * time.Second,
		MaxMessageSize:   1024,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := c.Clone()
	def := DefaultConfig()
	if out.HandshakeTimeout == 0 {
		out.HandshakeTimeout = def.HandshakeTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = def.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = def.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = def.PingInterval
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = def.MaxMessageSize
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = def.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = def.WriteBufferSize
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
