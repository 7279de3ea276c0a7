// Package telemetry provides devmon.Observer implementations backed by
// Prometheus and OpenTelemetry.
//
// Attach one (or several, via Multi) when constructing a Monitor:
//
//	m := devmon.New(bridge,
//	    devmon.WithObserver(telemetry.Multi(
//	        telemetry.Prometheus(telemetry.WithNamespace("myapp")),
//	        telemetry.OpenTelemetry(),
//	    )),
//	)
//
// Expose the metrics endpoint with promhttp as usual:
//
//	http.Handle("/metrics", promhttp.Handler())
package telemetry
