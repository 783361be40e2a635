package urlsync

import (
	"strings"
	"sync"

	"github.com/vireo-ui/vireo/pkg/route"
	"github.com/vireo-ui/vireo/pkg/serial"
)

// paramPrefix marks a bound name as addressing a path parameter rather
// than a query parameter.
const paramPrefix = ":"

// Binding is one managed synchronization link between a reactive value and
// a URL key. It lives until Close (or the owning scope's disposal) detaches
// its watchers.
type Binding struct {
	m      *Mirror
	key    string
	param  bool
	codec  serial.Codec
	mode   Mode
	modeFn ModeResolver

	mu sync.Mutex
	// lastWritten is the raw value this binding last wrote to the URL
	// (nil = null). A location change whose raw value matches it is this
	// binding's own write echoing back and must not re-assign the local
	// value. External reads never update it.
	lastWritten *string
	lastErr     error
	closed      bool

	cancels []func()
}

func (m *Mirror) newBinding(name string, format serial.Def, opts []BindOption) *Binding {
	key, param := classify(name)
	if key == "" {
		panic("vireo: urlsync: empty parameter name")
	}

	cfg := bindConfig{mode: ModePush}
	for _, opt := range opts {
		opt.applyBind(&cfg)
	}

	return &Binding{
		m:      m,
		key:    key,
		param:  param,
		codec:  serial.Resolve(format),
		mode:   cfg.mode,
		modeFn: cfg.modeFn,
	}
}

// classify splits a bound name into its URL key and field kind.
func classify(name string) (key string, param bool) {
	if strings.HasPrefix(name, paramPrefix) {
		return strings.TrimPrefix(name, paramPrefix), true
	}
	return name, false
}

// Key returns the URL key this binding addresses (prefix stripped).
func (b *Binding) Key() string {
	return b.key
}

// IsParam reports whether the binding addresses a path parameter.
func (b *Binding) IsParam() bool {
	return b.param
}

// Err returns the error from the most recent failed navigation, or nil.
// It is not cleared by later successful writes having nothing to report;
// each write that fails overwrites it.
func (b *Binding) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Close detaches both watchers. The binding stops synchronizing in either
// direction; the URL keeps whatever value was last written. Safe to call
// more than once.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// raw reads the location's raw value for this binding's key. nil means the
// key is absent.
func (b *Binding) raw(loc route.Location) *string {
	if b.param {
		return loc.ParamValue(b.key)
	}
	return loc.QueryValue(b.key)
}

func (b *Binding) last() *string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastWritten
}

// sync serializes a changed local value and writes it to the URL.
func (b *Binding) sync(v any) {
	enc, ok := b.codec.Encode(v)
	var raw *string
	if ok {
		raw = &enc
	}
	b.writeRaw(raw, v)
}

// writeRaw records raw as this binding's own write, then issues exactly one
// navigation patching only this key. The record happens before the
// navigation so the resulting location-change notification sees a match and
// no-ops. A nil raw removes the key.
func (b *Binding) writeRaw(raw *string, v any) {
	b.mu.Lock()
	b.lastWritten = raw
	b.mu.Unlock()

	mode := b.mode
	if b.modeFn != nil {
		mode = b.modeFn(b.key, v)
	}

	mut := route.Merge(map[string]*string{b.key: raw})
	query, params := route.Keep(), route.Keep()
	if b.param {
		params = mut
	} else {
		query = mut
	}

	var err error
	if mode == ModeReplace {
		err = b.m.nav.Replace(query, params)
	} else {
		err = b.m.nav.Push(query, params)
	}
	syncsTotal.WithLabelValues(directionToURL).Inc()

	if err != nil {
		navErrorsTotal.Inc()
		b.mu.Lock()
		b.lastErr = err
		b.mu.Unlock()
		b.m.log.Debug().Err(err).Str("key", b.key).Msg("urlsync: navigation failed")
		if b.m.onErr != nil {
			b.m.onErr(b.key, err)
		}
	}
}

// rawEqual compares two raw URL values, treating nil as the null/absent
// state distinct from the empty string.
func rawEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
