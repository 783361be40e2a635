// Package urlsync keeps reactive values and URL parameters in two-way
// agreement. A Mirror binds signals (or one reactive object) to query or
// path parameters through the serial codec registry and a route.History.
//
// Each binding maintains one correctness-critical invariant: a write to the
// URL records its own raw value before the navigation is issued, so the
// resulting location-change notification observes a matching raw value and
// is a no-op. That last-written comparison is the sole anti-echo mechanism;
// without it a local write would bounce off the URL and re-assign the local
// value forever.
//
// Example:
//
//	hist := route.NewMemoryHistory(route.Location{Name: "search"})
//	m := urlsync.New(hist)
//
//	query, _ := urlsync.Create(m, "q", "", serial.String, urlsync.Replace)
//	page, _ := urlsync.Create(m, "page", 1, serial.Int)
//
//	query.Set("boots") // URL now carries ?q=boots
//
// BindAll links several pre-existing signals in one call, inferring each
// field's format from its current value:
//
//	urlsync.BindAll(m, map[string]urlsync.Bindable{"q": query, "page": page})
//
// Bound names prefixed with ':' address path parameters instead of query
// parameters:
//
//	urlsync.Bind(m, ":id", idSignal, serial.String)
//
// Multiple bound fields patch the URL independently; each field change
// issues its own navigation, so rapid changes across fields produce several
// history entries under push mode. That is a documented property, not a
// defect — use Replace for transient fields.
package urlsync
