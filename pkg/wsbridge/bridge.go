package wsbridge

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/devmon/pkg/devmon"
	"github.com/vango-dev/devmon/pkg/protocol"
)

// Bridge is a devmon.Bridge backed by a live WebSocket connection to the
// browser. Queries are answered from the most recent viewport report; the
// zero report (0×0 viewport, no touch) applies until the client's Hello
// arrives.
type Bridge struct {
	config *Config
	logger *slog.Logger

	upgrader websocket.Upgrader

	mu        sync.RWMutex
	report    protocol.Report
	connected bool
	coalesced uint64

	resizeHandlers      []func()
	orientationHandlers []func()

	connMu sync.Mutex
	conn   *websocket.Conn
}

// New creates a bridge. A nil config uses DefaultConfig; zero-valued fields
// are filled from the defaults.
func New(config *Config) *Bridge {
	config = config.withDefaults()
	return &Bridge{
		config: config,
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   config.ReadBufferSize,
			WriteBufferSize:  config.WriteBufferSize,
			CheckOrigin:      config.CheckOrigin,
			HandshakeTimeout: config.HandshakeTimeout,
		},
	}
}

// ServeHTTP upgrades the request and runs the connection's read loop until
// the client disconnects. A new connection takes over from any previous one.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(b.config.MaxMessageSize)

	// Handshake: the first frame must be Hello.
	conn.SetReadDeadline(time.Now().Add(b.config.HandshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		b.logger.Error("handshake read failed", "error", err)
		conn.Close()
		return
	}

	hello, err := decodeHelloFrame(msg)
	if err != nil {
		b.logger.Error("handshake rejected", "error", err)
		b.sendError(conn, protocol.ErrCodeBadHandshake, err.Error())
		conn.Close()
		return
	}

	b.takeOver(conn)
	b.logger.Info("client connected",
		"remote", conn.RemoteAddr().String(),
		"width", hello.Initial.Width,
		"height", hello.Initial.Height,
		"touch", hello.Initial.Touch,
	)

	b.setConnected(true)
	b.applyReport(hello.Initial)

	b.readLoop(conn)

	// Only the connection that still owns the bridge flips it back to
	// disconnected; a taken-over connection must not.
	if b.release(conn) {
		b.setConnected(false)
	}
	conn.Close()
}

// readLoop reads report frames until the connection errors or closes.
func (b *Bridge) readLoop(conn *websocket.Conn) {
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(b.config.ReadTimeout))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go b.pingLoop(conn, stopPing)

	for {
		conn.SetReadDeadline(time.Now().Add(b.config.ReadTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				b.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			b.logger.Error("frame decode error", "error", err)
			b.sendError(conn, protocol.ErrCodeMalformedFrame, err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameReport:
			report, err := protocol.DecodeReport(frame.Payload)
			if err != nil {
				b.logger.Error("report decode error", "error", err)
				b.sendError(conn, protocol.ErrCodeBadReport, err.Error())
				continue
			}
			if frame.Flags.Has(protocol.FlagCoalesced) {
				b.recordCoalesced()
			}
			b.applyReport(report)

		case protocol.FrameHello:
			// Hello after handshake: treat as a fresh snapshot.
			hello, err := protocol.DecodeHello(frame.Payload)
			if err != nil {
				b.logger.Error("hello decode error", "error", err)
				b.sendError(conn, protocol.ErrCodeBadHandshake, err.Error())
				continue
			}
			b.applyReport(hello.Initial)

		default:
			b.logger.Warn("unexpected frame type", "type", frame.Type.String())
			b.sendError(conn, protocol.ErrCodeMalformedFrame, "unexpected frame type")
		}
	}
}

// pingLoop sends heartbeat pings until stop closes or a write fails.
func (b *Bridge) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(b.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			deadline := time.Now().Add(b.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				b.logger.Error("ping error", "error", err)
				return
			}
		}
	}
}

// applyReport stores the report and fires the handlers matching its kind.
// Handlers run outside the bridge lock so they may query the bridge freely.
func (b *Bridge) applyReport(r protocol.Report) {
	b.mu.Lock()
	b.report = r
	var handlers []func()
	switch r.Kind {
	case protocol.KindResize:
		handlers = append(handlers, b.resizeHandlers...)
	case protocol.KindOrientation:
		handlers = append(handlers, b.orientationHandlers...)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

// sendError sends a best-effort error frame to the client.
func (b *Bridge) sendError(conn *websocket.Conn, code protocol.ErrorCode, msg string) {
	payload := protocol.EncodeError(protocol.ErrorMessage{Code: code, Message: msg})
	frame, err := protocol.EncodeFrame(protocol.Frame{Type: protocol.FrameError, Payload: payload})
	if err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		b.logger.Error("error frame write failed", "error", err)
	}
}

// takeOver installs conn as the active connection, closing any previous one.
func (b *Bridge) takeOver(conn *websocket.Conn) {
	b.connMu.Lock()
	prev := b.conn
	b.conn = conn
	b.connMu.Unlock()

	if prev != nil {
		b.logger.Info("client reconnected, closing previous connection")
		prev.Close()
	}
}

// release clears the active connection if conn still owns it and reports
// whether it did.
func (b *Bridge) release(conn *websocket.Conn) bool {
	b.connMu.Lock()
	defer b.connMu.Unlock()
	if b.conn == conn {
		b.conn = nil
		return true
	}
	return false
}

func (b *Bridge) setConnected(v bool) {
	b.mu.Lock()
	b.connected = v
	b.mu.Unlock()
}

// recordCoalesced counts a report the client marked as merging several
// rapid host events.
func (b *Bridge) recordCoalesced() {
	b.mu.Lock()
	b.coalesced++
	b.mu.Unlock()
}

// CoalescedReports returns how many received reports carried the coalesced
// flag. Useful for judging how hard the client is debouncing.
func (b *Bridge) CoalescedReports() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.coalesced
}

// Connected reports whether a client is currently attached.
func (b *Bridge) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

// decodeHelloFrame parses a raw handshake message into a Hello.
func decodeHelloFrame(msg []byte) (protocol.Hello, error) {
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if frame.Type != protocol.FrameHello {
		return protocol.Hello{}, protocol.ErrInvalidFrameType
	}
	return protocol.DecodeHello(frame.Payload)
}

// MatchesSizeRule evaluates the rule against the last reported width.
func (b *Bridge) MatchesSizeRule(rule devmon.SizeRule) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return rule.MatchesWidth(b.report.Width)
}

// ViewportWidth returns the last reported viewport width.
func (b *Bridge) ViewportWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.Width
}

// ViewportHeight returns the last reported viewport height.
func (b *Bridge) ViewportHeight() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.Height
}

// OrientationAngle returns the last reported orientation angle.
func (b *Bridge) OrientationAngle() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.Angle
}

// SupportsTouchInput returns the last reported touch capability.
func (b *Bridge) SupportsTouchInput() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.Touch
}

// ScrollOffsetTop returns the last reported vertical scroll offset.
func (b *Bridge) ScrollOffsetTop() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.ScrollTop
}

// ScrollOffsetLeft returns the last reported horizontal scroll offset.
func (b *Bridge) ScrollOffsetLeft() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.report.ScrollLeft
}

// OnResize subscribes a handler to resize reports.
func (b *Bridge) OnResize(handler func()) {
	b.mu.Lock()
	b.resizeHandlers = append(b.resizeHandlers, handler)
	b.mu.Unlock()
}

// OnOrientationChange subscribes a handler to orientation reports.
func (b *Bridge) OnOrientationChange(handler func()) {
	b.mu.Lock()
	b.orientationHandlers = append(b.orientationHandlers, handler)
	b.mu.Unlock()
}

var _ devmon.Bridge = (*Bridge)(nil)
