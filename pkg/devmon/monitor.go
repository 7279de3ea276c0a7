package devmon

import (
	"log/slog"
	"sync"
)

// SizeClass is a semantic viewport-size bucket.
type SizeClass string

// Size classes, from narrowest to widest. The zero value means the monitor
// has not yet run a classification pass; it is never returned by Size.
const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Orientation is a semantic device-orientation bucket.
type Orientation string

// Orientations. Portrait corresponds to a host orientation angle of zero.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Click event names returned by ClickEventName.
const (
	ClickEventTouch   = "touchstart"
	ClickEventPointer = "click"
)

// Monitor classifies a device by viewport size and orientation and notifies
// registered listeners on change. Create one with New; there is no implicit
// shared instance.
type Monitor struct {
	bridge Bridge
	logger *slog.Logger
	obs    Observer

	smallRule  SizeRule
	mediumRule SizeRule

	mu                   sync.Mutex
	currentSize          SizeClass // "" until the first classification pass
	sizeListeners        []listenerEntry
	orientationListeners []listenerEntry
}

// New creates a Monitor bound to the given bridge, runs the initial
// classification pass, and subscribes to the bridge's resize and orientation
// events. Panics if bridge is nil.
func New(bridge Bridge, opts ...Option) *Monitor {
	if bridge == nil {
		panic("devmon: New called with nil Bridge")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Monitor{
		bridge:     bridge,
		logger:     cfg.logger,
		obs:        cfg.observer,
		smallRule:  cfg.smallRule,
		mediumRule: cfg.mediumRule,
	}

	m.UpdateSize()
	bridge.OnResize(m.UpdateSize)
	bridge.OnOrientationChange(m.dispatchOrientation)

	return m
}

// classify derives the size class from the bridge's current viewport.
// Evaluation order is fixed: small first, then medium, large as fallback.
// Overlapping rules resolve in favor of the earlier bucket; absent rules
// never match.
func (m *Monitor) classify() SizeClass {
	if !m.smallRule.IsZero() && m.bridge.MatchesSizeRule(m.smallRule) {
		return SizeSmall
	}
	if !m.mediumRule.IsZero() && m.bridge.MatchesSizeRule(m.mediumRule) {
		return SizeMedium
	}
	return SizeLarge
}

// UpdateSize runs a classification pass. The new size class is always
// stored; size-change listeners are dispatched only when it differs from the
// previously cached class. The very first pass always counts as a change.
func (m *Monitor) UpdateSize() {
	m.mu.Lock()
	prev := m.currentSize
	next := m.classify()
	m.currentSize = next
	changed := next != prev

	var snapshot []listenerEntry
	if changed {
		snapshot = append(snapshot, m.sizeListeners...)
	}
	m.mu.Unlock()

	if m.obs != nil {
		m.obs.ClassifyPass(next, changed)
	}
	if changed {
		m.dispatch(KindSize, snapshot)
	}
}

// Size returns the current size class. If no classification pass has run
// yet, one is performed first, so Size never returns the zero value.
func (m *Monitor) Size() SizeClass {
	m.mu.Lock()
	s := m.currentSize
	m.mu.Unlock()

	if s == "" {
		m.UpdateSize()
		m.mu.Lock()
		s = m.currentSize
		m.mu.Unlock()
	}
	return s
}

// SizeIs reports whether the current size class is one of the given classes.
// An empty argument list returns false.
func (m *Monitor) SizeIs(classes ...SizeClass) bool {
	current := m.Size()
	for _, c := range classes {
		if c == current {
			return true
		}
	}
	return false
}

// Orientation returns the current orientation: Portrait when the bridge
// reports an orientation angle of zero, Landscape otherwise. The value is
// computed on every call and never cached.
func (m *Monitor) Orientation() Orientation {
	if m.bridge.OrientationAngle() == 0 {
		return Portrait
	}
	return Landscape
}

// Width returns the current viewport width in pixels.
func (m *Monitor) Width() int { return m.bridge.ViewportWidth() }

// Height returns the current viewport height in pixels.
func (m *Monitor) Height() int { return m.bridge.ViewportHeight() }

// ScrollTop returns the vertical scroll offset in pixels.
func (m *Monitor) ScrollTop() int { return m.bridge.ScrollOffsetTop() }

// ScrollLeft returns the horizontal scroll offset in pixels.
func (m *Monitor) ScrollLeft() int { return m.bridge.ScrollOffsetLeft() }

// HasTouch reports whether the device has a touch screen.
func (m *Monitor) HasTouch() bool { return m.bridge.SupportsTouchInput() }

// ClickEventName returns the DOM event name an application should bind
// click handlers to: "touchstart" on touch devices, "click" otherwise.
func (m *Monitor) ClickEventName() string {
	if m.bridge.SupportsTouchInput() {
		return ClickEventTouch
	}
	return ClickEventPointer
}

// dispatchOrientation dispatches every orientation listener. It is bound to
// the bridge's orientation event and runs unconditionally: orientation
// dispatch has no change-detection gate, unlike size dispatch.
func (m *Monitor) dispatchOrientation() {
	m.mu.Lock()
	snapshot := append([]listenerEntry(nil), m.orientationListeners...)
	m.mu.Unlock()

	m.dispatch(KindOrientation, snapshot)
}
