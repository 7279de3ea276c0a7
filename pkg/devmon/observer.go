package devmon

// DispatchKind identifies which listener list a dispatch pass targets.
type DispatchKind string

// Dispatch kinds.
const (
	KindSize        DispatchKind = "size"
	KindOrientation DispatchKind = "orientation"
)

// Observer receives telemetry hooks from a Monitor. Implementations must be
// safe for concurrent use and must not block: hooks run inline on the event
// path. Package telemetry provides Prometheus and OpenTelemetry observers.
type Observer interface {
	// ClassifyPass is called after every classification pass with the
	// computed size class and whether it differed from the cached one.
	ClassifyPass(size SizeClass, changed bool)

	// Dispatch is called at the start of a dispatch pass with the number
	// of listeners in the snapshot.
	Dispatch(kind DispatchKind, listeners int)

	// ListenerPanic is called when a listener panics during dispatch.
	ListenerPanic(kind DispatchKind, err error)

	// ListenerAdded is called after a successful listener registration.
	ListenerAdded(kind DispatchKind)
}
