// Package route models the current address of a component UI as an
// immutable Location and provides the pieces that move it: a pure patcher
// that builds a new Location from query/param overrides, a History
// abstraction with push/replace/watch semantics, an in-process
// MemoryHistory, and a Navigator that performs exactly one history call per
// navigation.
//
// Patching never mutates the current Location; a new value is always
// constructed. Navigation failures propagate to the caller and are never
// retried.
package route
