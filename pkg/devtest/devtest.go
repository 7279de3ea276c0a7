// Package devtest provides a scriptable Bridge for testing code built on
// devmon.
//
// The bridge starts at a desktop-like 1024×768 portrait viewport; tests
// mutate it with the Set* methods and deliver host events with FireResize
// and FireOrientationChange:
//
//	b := devtest.NewBridge()
//	m := devmon.New(b)
//
//	b.SetWidth(400)
//	b.FireResize() // monitor reclassifies, listeners fire
package devtest

import (
	"sync"

	"github.com/vango-dev/devmon/pkg/devmon"
)

// Bridge is an in-memory devmon.Bridge with scriptable state. All methods
// are safe for concurrent use. Events fire handlers synchronously on the
// calling goroutine, in subscription order.
type Bridge struct {
	mu         sync.Mutex
	width      int
	height     int
	angle      int
	touch      bool
	scrollTop  int
	scrollLeft int

	resizeHandlers      []func()
	orientationHandlers []func()
}

// NewBridge returns a bridge reporting a 1024×768 portrait viewport with no
// touch support.
func NewBridge() *Bridge {
	return &Bridge{width: 1024, height: 768}
}

// SetWidth sets the reported viewport width. No event is fired.
func (b *Bridge) SetWidth(w int) { b.mu.Lock(); b.width = w; b.mu.Unlock() }

// SetHeight sets the reported viewport height. No event is fired.
func (b *Bridge) SetHeight(h int) { b.mu.Lock(); b.height = h; b.mu.Unlock() }

// SetAngle sets the reported orientation angle. No event is fired.
func (b *Bridge) SetAngle(a int) { b.mu.Lock(); b.angle = a; b.mu.Unlock() }

// SetTouch sets the reported touch capability.
func (b *Bridge) SetTouch(t bool) { b.mu.Lock(); b.touch = t; b.mu.Unlock() }

// SetScroll sets the reported scroll offsets.
func (b *Bridge) SetScroll(top, left int) {
	b.mu.Lock()
	b.scrollTop, b.scrollLeft = top, left
	b.mu.Unlock()
}

// FireResize invokes every subscribed resize handler synchronously.
func (b *Bridge) FireResize() {
	b.mu.Lock()
	handlers := make([]func(), len(b.resizeHandlers))
	copy(handlers, b.resizeHandlers)
	b.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

// FireOrientationChange invokes every subscribed orientation handler
// synchronously.
func (b *Bridge) FireOrientationChange() {
	b.mu.Lock()
	handlers := make([]func(), len(b.orientationHandlers))
	copy(handlers, b.orientationHandlers)
	b.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

// MatchesSizeRule evaluates the rule against the scripted width.
func (b *Bridge) MatchesSizeRule(rule devmon.SizeRule) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return rule.MatchesWidth(b.width)
}

// ViewportWidth returns the scripted viewport width.
func (b *Bridge) ViewportWidth() int { b.mu.Lock(); defer b.mu.Unlock(); return b.width }

// ViewportHeight returns the scripted viewport height.
func (b *Bridge) ViewportHeight() int { b.mu.Lock(); defer b.mu.Unlock(); return b.height }

// OrientationAngle returns the scripted orientation angle.
func (b *Bridge) OrientationAngle() int { b.mu.Lock(); defer b.mu.Unlock(); return b.angle }

// SupportsTouchInput returns the scripted touch capability.
func (b *Bridge) SupportsTouchInput() bool { b.mu.Lock(); defer b.mu.Unlock(); return b.touch }

// ScrollOffsetTop returns the scripted vertical scroll offset.
func (b *Bridge) ScrollOffsetTop() int { b.mu.Lock(); defer b.mu.Unlock(); return b.scrollTop }

// ScrollOffsetLeft returns the scripted horizontal scroll offset.
func (b *Bridge) ScrollOffsetLeft() int { b.mu.Lock(); defer b.mu.Unlock(); return b.scrollLeft }

// OnResize subscribes a handler to FireResize.
func (b *Bridge) OnResize(handler func()) {
	b.mu.Lock()
	b.resizeHandlers = append(b.resizeHandlers, handler)
	b.mu.Unlock()
}

// OnOrientationChange subscribes a handler to FireOrientationChange.
func (b *Bridge) OnOrientationChange(handler func()) {
	b.mu.Lock()
	b.orientationHandlers = append(b.orientationHandlers, handler)
	b.mu.Unlock()
}

var _ devmon.Bridge = (*Bridge)(nil)
