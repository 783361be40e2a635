package flash

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Common message kinds. Any string is a valid kind; these cover the usual
// alert levels.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// Message is one typed notification.
type Message struct {
	Kind string
	Text string
}

// Delivered is a message at delivery time: the queue assigns a sequence ID
// and a display timeout for the renderer's dismiss timer. Sequence IDs
// increase in delivery order.
type Delivered struct {
	Message
	Seq     uint64
	Timeout time.Duration
}

// DeliveryFunc receives delivered messages, in the exact order they were
// added.
type DeliveryFunc func(Delivered)

// queueState is the explicit delivery state: messages buffer until a
// callback registers, then bypass the buffer.
type queueState uint8

const (
	stateBuffering queueState = iota
	stateDelivering
)

const (
	defaultTimeout      = 5 * time.Second
	defaultErrorTimeout = 10 * time.Second
)

// Option configures a Queue.
type Option func(*Queue)

// WithLogger installs a logger for queue diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(q *Queue) {
		q.log = l
	}
}

// WithAliases seeds the kind alias map.
func WithAliases(aliases map[string]string) Option {
	return func(q *Queue) {
		for kind, alias := range aliases {
			q.aliases[kind] = alias
		}
	}
}

// WithClassFunc overrides CSS class resolution. The function receives the
// kind and its alias ("" when none is mapped).
func WithClassFunc(fn func(kind, alias string) string) Option {
	return func(q *Queue) {
		q.classFn = fn
	}
}

// WithTimeoutFunc overrides display-timeout resolution per kind.
func WithTimeoutFunc(fn func(kind string) time.Duration) Option {
	return func(q *Queue) {
		q.timeoutFn = fn
	}
}

// Queue is a FIFO notification buffer with a single late-bound delivery
// callback. Before Deliver is called, Add buffers; afterwards, Add invokes
// the callback synchronously. One Queue is shared per application.
type Queue struct {
	mu      sync.Mutex
	state   queueState
	pending []Message
	deliver DeliveryFunc
	seq     uint64

	aliases   map[string]string
	classFn   func(kind, alias string) string
	timeoutFn func(kind string) time.Duration

	log zerolog.Logger
}

// NewQueue creates an empty queue in the buffering state.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		aliases: make(map[string]string),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add enqueues or delivers one message, depending on the queue state.
// Never reorders, never deduplicates.
func (q *Queue) Add(kind, text string) {
	msg := Message{Kind: kind, Text: text}

	q.mu.Lock()
	if q.state == stateBuffering {
		q.pending = append(q.pending, msg)
		q.mu.Unlock()
		messagesTotal.WithLabelValues("buffered").Inc()
		return
	}
	out := q.stamp(msg)
	fn := q.deliver
	q.mu.Unlock()

	messagesTotal.WithLabelValues("delivered").Inc()
	fn(out)
}

// Deliver registers the delivery callback. On the transition out of the
// buffering state the pending messages are flushed to the callback
// synchronously, in insertion order, and the buffer is cleared.
// Re-registration replaces the callback but never re-flushes.
func (q *Queue) Deliver(fn DeliveryFunc) {
	if fn == nil {
		panic("vireo: flash: Deliver requires a callback")
	}

	q.mu.Lock()
	q.deliver = fn
	var drained []Delivered
	if q.state == stateBuffering {
		q.state = stateDelivering
		for _, msg := range q.pending {
			drained = append(drained, q.stamp(msg))
		}
		q.pending = nil
	}
	q.mu.Unlock()

	if len(drained) > 0 {
		q.log.Debug().Int("count", len(drained)).Msg("flash: draining buffered messages")
	}
	for _, d := range drained {
		messagesTotal.WithLabelValues("delivered").Inc()
		fn(d)
	}
}

// stamp assigns delivery-time metadata. Caller holds q.mu.
func (q *Queue) stamp(msg Message) Delivered {
	q.seq++
	return Delivered{
		Message: msg,
		Seq:     q.seq,
		Timeout: q.timeout(msg.Kind),
	}
}

// Pending returns the number of buffered messages.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// SetAlias maps a message kind to a display alias used by CSSClass.
func (q *Queue) SetAlias(kind, alias string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.aliases[kind] = alias
}

// Alias returns the alias for a kind, or "" when none is mapped.
func (q *Queue) Alias(kind string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.aliases[kind]
}

// CSSClass resolves the banner class for a kind. The default composes an
// alert-style class from the alias, falling back to the raw kind when no
// alias exists; override the policy with WithClassFunc.
func (q *Queue) CSSClass(kind string) string {
	q.mu.Lock()
	alias := q.aliases[kind]
	fn := q.classFn
	q.mu.Unlock()

	if fn != nil {
		return fn(kind, alias)
	}
	if alias == "" {
		alias = kind
	}
	return "alert alert-" + alias
}

// timeout resolves the display timeout for a kind. Caller holds q.mu.
func (q *Queue) timeout(kind string) time.Duration {
	if q.timeoutFn != nil {
		return q.timeoutFn(kind)
	}
	if kind == KindError {
		return defaultErrorTimeout
	}
	return defaultTimeout
}

// Success adds a success message.
func (q *Queue) Success(text string) { q.Add(KindSuccess, text) }

// Error adds an error message.
func (q *Queue) Error(text string) { q.Add(KindError, text) }

// Warning adds a warning message.
func (q *Queue) Warning(text string) { q.Add(KindWarning, text) }

// Info adds an info message.
func (q *Queue) Info(text string) { q.Add(KindInfo, text) }
