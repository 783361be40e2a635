// Package flash buffers typed notification messages until a rendering
// surface registers a delivery callback, then hands every later message
// over synchronously. The queue is an explicit two-state machine —
// buffering before registration, delivering after — and messages always
// arrive in the order they were added.
//
// A queue is constructed explicitly and passed to whatever needs it; the
// top-level composition point owns the one shared instance per
// application.
//
// The rendering surface is user-defined. A container registers one
// delivery callback; each Delivered message carries a sequence ID and a
// display timeout for the renderer's dismiss timer:
//
//	q := flash.NewQueue()
//	q.Add("info", "Saved")             // buffered
//	q.Deliver(func(d flash.Delivered) { // drains "Saved", then live
//	    render(d.Kind, d.Text, d.Timeout)
//	})
//
// DeliverWebSocket forwards messages over an established socket for hosts
// whose rendering surface lives on the client.
package flash
