package urlsync

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/vireo-ui/vireo/pkg/reactive"
	"github.com/vireo-ui/vireo/pkg/route"
	"github.com/vireo-ui/vireo/pkg/serial"
)

// Mode determines how a binding's URL writes affect browser history.
type Mode int

const (
	// ModePush adds a new history entry per write (default).
	ModePush Mode = iota

	// ModeReplace replaces the current entry; use for transient fields
	// like search text and filters.
	ModeReplace
)

// ModeResolver decides the mode per change event. It receives the URL key
// and the new value, which lets one aggregate distinguish transient filter
// fields (replace) from significant navigation fields (push).
type ModeResolver func(field string, value any) Mode

// BindOption configures a single binding (or every field of an object).
type BindOption interface {
	applyBind(*bindConfig)
}

type bindConfig struct {
	mode   Mode
	modeFn ModeResolver
}

// Mode options as values, matching the navigation vocabulary.
var (
	// Push makes every write add a history entry. Note that an external
	// navigation changing a pushed key triggers one write-back of the
	// identical value, adding a second entry per external change; prefer
	// Replace for keys that outside navigations also drive.
	Push BindOption = modeOption{mode: ModePush}

	// Replace makes every write replace the current entry.
	Replace BindOption = modeOption{mode: ModeReplace}
)

type modeOption struct {
	mode Mode
}

func (o modeOption) applyBind(c *bindConfig) {
	c.mode = o.mode
}

type modeFuncOption struct {
	fn ModeResolver
}

func (o modeFuncOption) applyBind(c *bindConfig) {
	c.modeFn = o.fn
}

// ModeFunc resolves push-versus-replace per change event.
func ModeFunc(fn ModeResolver) BindOption {
	return modeFuncOption{fn: fn}
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger installs a logger for navigation-failure diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Mirror) {
		m.log = l
	}
}

// WithScope ties every binding's lifetime to a scope: disposing the scope
// closes all bindings created through this mirror.
func WithScope(s *reactive.Scope) Option {
	return func(m *Mirror) {
		m.scope = s
	}
}

// WithOnError installs a hook invoked with the URL key and error whenever a
// binding's navigation fails. The failed write is not retried and the local
// value is not rolled back; local and URL state may transiently diverge
// until the caller reconciles.
func WithOnError(fn func(key string, err error)) Option {
	return func(m *Mirror) {
		m.onErr = fn
	}
}

// Mirror binds reactive values to URL query and path parameters over a
// route.History. Construct one per component instance (pass the instance's
// scope via WithScope) or one per application for global parameters.
type Mirror struct {
	hist  route.History
	nav   *route.Navigator
	log   zerolog.Logger
	scope *reactive.Scope
	onErr func(key string, err error)

	mu       sync.Mutex
	bindings []*Binding
}

// New creates a mirror over the given history.
func New(h route.History, opts ...Option) *Mirror {
	if h == nil {
		panic("vireo: urlsync: New requires a history")
	}
	m := &Mirror{
		hist: h,
		nav:  route.NewNavigator(h),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Close closes every binding created through this mirror.
func (m *Mirror) Close() {
	m.mu.Lock()
	bindings := m.bindings
	m.bindings = nil
	m.mu.Unlock()

	for _, b := range bindings {
		b.Close()
	}
}

func (m *Mirror) register(b *Binding) {
	m.mu.Lock()
	m.bindings = append(m.bindings, b)
	m.mu.Unlock()

	if m.scope != nil {
		m.scope.OnCleanup(b.Close)
	}
}

// Bindable is the untyped face of a reactive value a binding reads,
// assigns, and observes. *reactive.Signal[T] satisfies it for any T, which
// lets BindAll link signals of different element types in one call.
type Bindable interface {
	Value() any
	Assign(v any)
	Observe(fn func(v any)) (cancel func())
}

// Bind links an existing signal to a URL parameter. The name addresses a
// query parameter, or a path parameter when prefixed with ':'. A nil signal
// or empty name is a contract violation and panics.
//
// At bind time the URL wins: if the route currently defines the key, its
// value is deserialized into the signal, replacing the default. Otherwise
// the signal's current value is serialized and, when non-null, written into
// the URL once.
func Bind[T any](m *Mirror, name string, sig *reactive.Signal[T], format serial.Def, opts ...BindOption) *Binding {
	if m == nil {
		panic("vireo: urlsync: Bind on nil mirror")
	}
	if sig == nil {
		panic("vireo: urlsync: Bind requires a signal to bind to " + name)
	}
	return bindValue(m, name, sig, format, opts)
}

// BindAll links several existing reactive values in one call. Each entry's
// format is inferred from its current value via serial.ForValue; fields
// needing an explicit format or a custom codec should use Bind. Options
// apply to every binding; lifetimes ride the mirror (and its scope) as
// with Bind. A nil mirror or a nil map value panics.
func BindAll(m *Mirror, values map[string]Bindable, opts ...BindOption) {
	if m == nil {
		panic("vireo: urlsync: BindAll on nil mirror")
	}
	for name, val := range values {
		if val == nil {
			panic("vireo: urlsync: BindAll requires a value to bind to " + name)
		}
		bindValue(m, name, val, serial.ForValue(val.Value()), opts)
	}
}

// Create makes a fresh signal with the given default and binds it.
func Create[T any](m *Mirror, name string, def T, format serial.Def, opts ...BindOption) (*reactive.Signal[T], *Binding) {
	sig := reactive.NewSignal(def)
	b := Bind(m, name, sig, format, opts...)
	return sig, b
}

// bindValue is the shared core of Bind and BindAll: it reconciles the
// initial state, attaches both watchers, and registers the binding.
func bindValue(m *Mirror, name string, val Bindable, format serial.Def, opts []BindOption) *Binding {
	b := m.newBinding(name, format, opts)

	// Record the raw value present at bind time; the echo check compares
	// against it until the first write.
	b.lastWritten = b.raw(m.hist.Current())

	// Initial reconciliation runs before the watchers attach so the
	// initial assignment cannot itself issue a navigation.
	if raw := b.lastWritten; raw != nil {
		val.Assign(b.codec.Decode(raw))
	} else if enc, ok := b.codec.Encode(val.Value()); ok {
		b.writeRaw(&enc, val.Value())
	}

	cancelURL := m.hist.Watch(func(loc route.Location) {
		raw := b.raw(loc)
		if rawEqual(raw, b.last()) {
			echoSuppressedTotal.Inc()
			return
		}
		syncsTotal.WithLabelValues(directionFromURL).Inc()
		val.Assign(b.codec.Decode(raw))
	})

	cancelValue := val.Observe(func(v any) {
		b.sync(v)
	})

	b.cancels = []func(){cancelURL, cancelValue}
	m.register(b)
	return b
}
