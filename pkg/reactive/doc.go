// Package reactive provides the reactive value primitives consumed by the
// rest of the module: typed signals with change notification, a field-keyed
// reactive object that emits explicit structural-change events, and a
// disposal scope that owns watcher teardown.
package reactive
