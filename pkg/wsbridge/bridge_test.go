package wsbridge

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/devmon/pkg/devmon"
	"github.com/vango-dev/devmon/pkg/protocol"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

// dial connects a test client to the bridge over an httptest server.
func dial(t *testing.T, b *Bridge) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, ft protocol.FrameType, payload []byte) {
	t.Helper()
	wire, err := protocol.EncodeFrame(protocol.Frame{Type: ft, Payload: payload})
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, wire); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func sendFlaggedFrame(t *testing.T, conn *websocket.Conn, ft protocol.FrameType, flags protocol.FrameFlags, payload []byte) {
	t.Helper()
	wire, err := protocol.EncodeFrame(protocol.Frame{Type: ft, Flags: flags, Payload: payload})
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, wire); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func sendHello(t *testing.T, conn *websocket.Conn, initial protocol.Report) {
	t.Helper()
	sendFrame(t, conn, protocol.FrameHello, protocol.EncodeHello(protocol.Hello{
		Version: protocol.Version,
		Initial: initial,
	}))
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestBridge_HelloPopulatesCacheAndFiresResize(t *testing.T) {
	b := New(testConfig())

	resized := make(chan struct{}, 1)
	b.OnResize(func() { resized <- struct{}{} })

	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{
		Kind: protocol.KindResize, Width: 390, Height: 844, Angle: 90, Touch: true,
	})
	waitSignal(t, resized, "resize handler")

	if got := b.ViewportWidth(); got != 390 {
		t.Errorf("ViewportWidth() = %d, want 390", got)
	}
	if got := b.ViewportHeight(); got != 844 {
		t.Errorf("ViewportHeight() = %d, want 844", got)
	}
	if got := b.OrientationAngle(); got != 90 {
		t.Errorf("OrientationAngle() = %d, want 90", got)
	}
	if !b.SupportsTouchInput() {
		t.Error("SupportsTouchInput() = false, want true")
	}
	if !b.Connected() {
		t.Error("Connected() = false, want true")
	}
	if !b.MatchesSizeRule(devmon.SizeRule{MaxWidth: 599}) {
		t.Error("MatchesSizeRule(max 599) = false for width 390")
	}
}

func TestBridge_OrientationReportFiresOrientationHandler(t *testing.T) {
	b := New(testConfig())

	rotated := make(chan struct{}, 1)
	b.OnOrientationChange(func() { rotated <- struct{}{} })

	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{Kind: protocol.KindResize, Width: 844, Height: 390})

	sendFrame(t, conn, protocol.FrameReport, protocol.AppendReport(nil, protocol.Report{
		Kind: protocol.KindOrientation, Width: 390, Height: 844, Angle: 0,
	}))
	waitSignal(t, rotated, "orientation handler")

	if got := b.ViewportWidth(); got != 390 {
		t.Errorf("ViewportWidth() after rotation = %d, want 390", got)
	}
}

func TestBridge_ScrollReportUpdatesCacheSilently(t *testing.T) {
	b := New(testConfig())

	fired := make(chan struct{}, 2)
	b.OnResize(func() { fired <- struct{}{} })
	b.OnOrientationChange(func() { fired <- struct{}{} })

	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{Kind: protocol.KindResize, Width: 1024, Height: 768})
	waitSignal(t, fired, "initial resize")

	sendFrame(t, conn, protocol.FrameReport, protocol.AppendReport(nil, protocol.Report{
		Kind: protocol.KindScroll, Width: 1024, Height: 768, ScrollTop: 300, ScrollLeft: 12,
	}))

	deadline := time.Now().Add(2 * time.Second)
	for b.ScrollOffsetTop() != 300 {
		if time.Now().After(deadline) {
			t.Fatalf("ScrollOffsetTop() = %d, want 300", b.ScrollOffsetTop())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := b.ScrollOffsetLeft(); got != 12 {
		t.Errorf("ScrollOffsetLeft() = %d, want 12", got)
	}

	select {
	case <-fired:
		t.Fatal("scroll report fired a resize/orientation handler")
	default:
	}
}

func TestBridge_CoalescedReportCountedAndApplied(t *testing.T) {
	b := New(testConfig())

	resized := make(chan struct{}, 2)
	b.OnResize(func() { resized <- struct{}{} })

	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{Kind: protocol.KindResize, Width: 1024, Height: 768})
	waitSignal(t, resized, "initial resize")

	sendFlaggedFrame(t, conn, protocol.FrameReport, protocol.FlagCoalesced,
		protocol.AppendReport(nil, protocol.Report{
			Kind: protocol.KindResize, Width: 500, Height: 400,
		}))
	waitSignal(t, resized, "coalesced resize")

	if got := b.ViewportWidth(); got != 500 {
		t.Errorf("ViewportWidth() = %d, want 500", got)
	}
	if got := b.CoalescedReports(); got != 1 {
		t.Errorf("CoalescedReports() = %d, want 1", got)
	}
}

func TestBridge_MalformedReportGetsErrorFrame(t *testing.T) {
	b := New(testConfig())
	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{Kind: protocol.KindResize, Width: 800, Height: 600})

	// Truncated report payload.
	sendFrame(t, conn, protocol.FrameReport, []byte{byte(protocol.KindResize)})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("decode error frame: %v", err)
	}
	if frame.Type != protocol.FrameError {
		t.Fatalf("frame type = %v, want FrameError", frame.Type)
	}
	em, err := protocol.DecodeError(frame.Payload)
	if err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if em.Code != protocol.ErrCodeBadReport {
		t.Fatalf("error code = %v, want ErrCodeBadReport", em.Code)
	}

	// The connection survives the bad report.
	sendFrame(t, conn, protocol.FrameReport, protocol.AppendReport(nil, protocol.Report{
		Kind: protocol.KindResize, Width: 500, Height: 400,
	}))
	deadline := time.Now().Add(2 * time.Second)
	for b.ViewportWidth() != 500 {
		if time.Now().After(deadline) {
			t.Fatalf("ViewportWidth() = %d, want 500 after recovery", b.ViewportWidth())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBridge_BadHandshakeRejected(t *testing.T) {
	b := New(testConfig())
	conn := dial(t, b)

	// First frame must be Hello; a report is rejected and the connection
	// closed after an error frame.
	sendFrame(t, conn, protocol.FrameReport, protocol.AppendReport(nil, protocol.Report{
		Kind: protocol.KindResize, Width: 800, Height: 600,
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("decode error frame: %v", err)
	}
	if frame.Type != protocol.FrameError {
		t.Fatalf("frame type = %v, want FrameError", frame.Type)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection close after handshake rejection")
	}
	if b.Connected() {
		t.Fatal("Connected() = true after rejected handshake")
	}
}

func TestBridge_MonitorIntegration(t *testing.T) {
	b := New(testConfig())
	m := devmon.New(b, devmon.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	sized := make(chan devmon.SizeClass, 4)
	m.AddSizeChangeListener(func(args ...any) { sized <- m.Size() }, false)

	conn := dial(t, b)
	sendHello(t, conn, protocol.Report{Kind: protocol.KindResize, Width: 390, Height: 844})

	// Width 0 (pre-connect) and 390 both classify small, so the first
	// dispatch the listener sees comes from the jump to a large viewport.
	sendFrame(t, conn, protocol.FrameReport, protocol.AppendReport(nil, protocol.Report{
		Kind: protocol.KindResize, Width: 1280, Height: 800,
	}))

	select {
	case got := <-sized:
		if got != devmon.SizeLarge {
			t.Fatalf("size after resize = %q, want %q", got, devmon.SizeLarge)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for size-change dispatch")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := (&Config{ReadTimeout: time.Second}).withDefaults()
	if cfg.ReadTimeout != time.Second {
		t.Errorf("explicit ReadTimeout overwritten: %v", cfg.ReadTimeout)
	}
	if cfg.PingInterval != 30*time.Second {
		t.Errorf("PingInterval default = %v, want 30s", cfg.PingInterval)
	}
	if cfg.MaxMessageSize != 1024 {
		t.Errorf("MaxMessageSize default = %d, want 1024", cfg.MaxMessageSize)
	}
	if cfg.Logger == nil {
		t.Error("Logger default = nil")
	}

	if got := (*Config)(nil).withDefaults(); got == nil {
		t.Fatal("nil config withDefaults() = nil")
	}
	if (*Config)(nil).Clone() != nil {
		t.Fatal("nil Clone() should be nil")
	}
}
