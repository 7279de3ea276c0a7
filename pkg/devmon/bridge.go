package devmon

// SizeRule describes a viewport-width predicate in the style of a CSS media
// query. MinWidth and MaxWidth are inclusive pixel bounds; a zero bound is
// unbounded on that side. The zero value is the absent rule: it matches
// nothing, so a monitor configured with zero rules classifies everything as
// SizeLarge.
type SizeRule struct {
	// MinWidth is the inclusive lower bound in pixels. 0 = unbounded.
	MinWidth int

	// MaxWidth is the inclusive upper bound in pixels. 0 = unbounded.
	MaxWidth int
}

// IsZero reports whether the rule is absent (no predicate).
func (r SizeRule) IsZero() bool {
	return r.MinWidth == 0 && r.MaxWidth == 0
}

// MatchesWidth reports whether the given viewport width satisfies the rule.
// The zero rule matches nothing.
func (r SizeRule) MatchesWidth(width int) bool {
	if r.IsZero() {
		return false
	}
	if r.MinWidth > 0 && width < r.MinWidth {
		return false
	}
	if r.MaxWidth > 0 && width > r.MaxWidth {
		return false
	}
	return true
}

// Bridge is the host-environment capability set the Monitor depends on.
// Implementations own the actual measurement (a browser viewport reached
// over a live connection, a scripted fake in tests) and deliver resize and
// orientation events to the handlers registered via OnResize and
// OnOrientationChange.
//
// Query methods must be safe to call from any goroutine and must never
// block. Event handlers are invoked on a bridge-owned goroutine, one event
// at a time.
type Bridge interface {
	// MatchesSizeRule evaluates a viewport predicate against the current
	// viewport, in the manner of a media-query test.
	MatchesSizeRule(rule SizeRule) bool

	// ViewportWidth returns the current viewport width in pixels.
	ViewportWidth() int

	// ViewportHeight returns the current viewport height in pixels.
	ViewportHeight() int

	// OrientationAngle returns the host-reported orientation angle in
	// degrees. 0 means portrait in this system's convention.
	OrientationAngle() int

	// SupportsTouchInput reports whether the device has a touch screen.
	SupportsTouchInput() bool

	// ScrollOffsetTop returns the vertical scroll offset in pixels.
	ScrollOffsetTop() int

	// ScrollOffsetLeft returns the horizontal scroll offset in pixels.
	ScrollOffsetLeft() int

	// OnResize subscribes a handler to host viewport resize events.
	// The handler receives no payload; it re-queries the bridge.
	OnResize(handler func())

	// OnOrientationChange subscribes a handler to host orientation events.
	OnOrientationChange(handler func())
}
