package devmon

import "fmt"

// ListenerFunc is a change-notification callback. It receives the arguments
// that were bound at registration time.
type ListenerFunc func(args ...any)

// listenerEntry pairs a callback with the arguments captured when it was
// registered. Entries are immutable and never removed.
type listenerEntry struct {
	fn   ListenerFunc
	args []any
}

// AddSizeChangeListener registers fn to run whenever the size class
// changes. The remaining arguments are captured now and passed to fn on
// every dispatch. If autoInvoke is true, fn is additionally invoked once,
// synchronously, before AddSizeChangeListener returns.
//
// A nil fn is silently ignored: nothing is registered and no error is
// reported.
func (m *Monitor) AddSizeChangeListener(fn ListenerFunc, autoInvoke bool, boundArgs ...any) {
	m.addListener(KindSize, fn, autoInvoke, boundArgs)
}

// AddOrientationChangeListener registers fn to run on every host
// orientation event. Semantics are identical to AddSizeChangeListener but
// the listener list is separate.
func (m *Monitor) AddOrientationChangeListener(fn ListenerFunc, autoInvoke bool, boundArgs ...any) {
	m.addListener(KindOrientation, fn, autoInvoke, boundArgs)
}

// addListener validates and enqueues a listener entry. The boolean result
// keeps the silent-ignore contract observable from inside the package: false
// means the callback was rejected and nothing was registered.
func (m *Monitor) addListener(kind DispatchKind, fn ListenerFunc, autoInvoke bool, boundArgs []any) bool {
	if fn == nil {
		return false
	}

	entry := listenerEntry{fn: fn, args: append([]any(nil), boundArgs...)}

	m.mu.Lock()
	switch kind {
	case KindSize:
		m.sizeListeners = append(m.sizeListeners, entry)
	case KindOrientation:
		m.orientationListeners = append(m.orientationListeners, entry)
	}
	m.mu.Unlock()

	if m.obs != nil {
		m.obs.ListenerAdded(kind)
	}
	if autoInvoke {
		m.invoke(kind, entry)
	}
	return true
}

// dispatch invokes every entry in the snapshot, in registration order.
// Listeners registered while a pass is running are not part of the snapshot
// and first run on the next pass.
func (m *Monitor) dispatch(kind DispatchKind, entries []listenerEntry) {
	if m.obs != nil {
		m.obs.Dispatch(kind, len(entries))
	}
	for _, entry := range entries {
		m.invoke(kind, entry)
	}
}

// invoke runs a single listener with its bound arguments. A panicking
// listener is recovered, logged and reported to the observer so the
// remaining listeners in the pass still run.
func (m *Monitor) invoke(kind DispatchKind, entry listenerEntry) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("devmon: listener panic: %v", r)
			m.logger.Error("listener panicked during dispatch",
				"kind", string(kind),
				"error", err,
			)
			if m.obs != nil {
				m.obs.ListenerPanic(kind, err)
			}
		}
	}()

	entry.fn(entry.args...)
}
