// Package wsbridge implements a devmon.Bridge fed by a browser over a
// WebSocket connection.
//
// The page runs a thin client that sends binary viewport reports (package
// protocol) whenever the window resizes, the device rotates, or the page
// scrolls. The bridge caches the most recent report and answers all
// devmon.Bridge queries from that cache; resize and orientation reports
// additionally fire the handlers the Monitor subscribed.
//
// Mount the bridge as an HTTP handler and hand it to a Monitor:
//
//	b := wsbridge.New(nil)
//	m := devmon.New(b)
//	r.Handle("/devmon/ws", b)
//
// A bridge tracks one device. If the client reconnects, the new connection
// takes over and the previous one is closed.
package wsbridge
