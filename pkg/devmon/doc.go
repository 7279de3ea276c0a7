// Package devmon classifies the device behind a connected UI session.
//
// A Monitor watches viewport dimensions and device orientation through a
// Bridge and buckets the device into one of three size classes (small,
// medium, large) and two orientations (portrait, landscape). Registered
// listeners are notified when the size class changes; orientation listeners
// fire on every host orientation event.
//
// # Quick Start
//
//	m := devmon.New(bridge)
//	m.AddSizeChangeListener(func(args ...any) {
//	    log.Println("size is now", m.Size())
//	}, false)
//
//	if m.SizeIs(devmon.SizeSmall) {
//	    // render the compact layout
//	}
//
// # Bridges
//
// The Monitor never measures anything itself. All viewport reads and event
// subscriptions go through the Bridge interface, so the same classification
// logic works against a live WebSocket-fed bridge (package wsbridge) or a
// scripted one in tests (package devtest).
//
// # Size Rules
//
// Classification is an ordered decision table: the small rule is evaluated
// first, then the medium rule, and large is the fallback when neither
// matches. Rules are viewport-width ranges in the style of CSS media
// queries; the defaults are small = max-width 599 and medium = 600–960.
//
// # Thread Safety
//
// All Monitor methods are safe for concurrent use. Bridges deliver events
// from their own goroutines; the Monitor serializes state transitions and
// dispatches listeners outside its lock, so listeners may safely call back
// into the Monitor.
package devmon
