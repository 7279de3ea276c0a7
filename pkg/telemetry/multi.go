package telemetry

import "github.com/vango-dev/devmon/pkg/devmon"

// multi fans observer hooks out to several observers.
type multi []devmon.Observer

// Multi combines several observers into one. Hooks run in argument order.
// Nil entries are skipped.
func Multi(observers ...devmon.Observer) devmon.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multi) ClassifyPass(size devmon.SizeClass, changed bool) {
	for _, o := range m {
		o.ClassifyPass(size, changed)
	}
}

func (m multi) Dispatch(kind devmon.DispatchKind, listeners int) {
	for _, o := range m {
		o.Dispatch(kind, listeners)
	}
}

func (m multi) ListenerPanic(kind devmon.DispatchKind, err error) {
	for _, o := range m {
		o.ListenerPanic(kind, err)
	}
}

func (m multi) ListenerAdded(kind devmon.DispatchKind) {
	for _, o := range m {
		o.ListenerAdded(kind)
	}
}
