package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for signals, watchers,
// objects, and scopes. Atomic increments keep generation lock-free.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are monotonically increasing
// and never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
