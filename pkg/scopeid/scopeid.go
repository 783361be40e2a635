// Package scopeid derives stable element IDs scoped to a component
// instance, so the same short name yields the same ID within an instance
// and different IDs across instances.
package scopeid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/vireo-ui/vireo/pkg/reactive"
)

// defaultPrefix namespaces generated IDs away from hand-written ones.
const defaultPrefix = "v"

// Identifiable is a UI element that carries an assignable identifier.
// Elements whose identity is only known after they are attached to the
// output surface implement this to receive a generated ID.
type Identifiable interface {
	ID() string
	SetID(id string)
}

// Option configures a Generator.
type Option func(*Generator)

// WithPrefix overrides the ID prefix.
func WithPrefix(p string) Option {
	return func(g *Generator) {
		g.prefix = p
	}
}

// Generator derives element IDs for one component instance. Make is
// deterministic per (instance, name) pair; Ensure assigns random IDs to
// late-identified elements.
type Generator struct {
	prefix   string
	instance string
}

// New creates a generator with a random instance identity. Use this
// outside any component context; IDs are unique per generator but not
// reproducible across runs.
func New(opts ...Option) *Generator {
	g := &Generator{
		prefix:   defaultPrefix,
		instance: randomToken(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ForScope creates a generator whose instance identity is the scope's
// unique runtime ID, so IDs are deterministic for the life of that
// component instance.
func ForScope(s *reactive.Scope, opts ...Option) *Generator {
	if s == nil {
		return New(opts...)
	}
	g := &Generator{
		prefix:   defaultPrefix,
		instance: strconv.FormatUint(s.ID(), 10),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Make returns the ID for a short name: prefix + instance + "_" + name.
// Repeated calls with the same name return the same string.
func (g *Generator) Make(name string) string {
	return g.prefix + g.instance + "_" + name
}

// Ensure returns the element's ID, assigning one if needed. A caller-set
// ID always wins and is returned unchanged. Otherwise a fresh random ID is
// assigned; it is stable for the element's lifetime but not reproducible
// across remounts.
func (g *Generator) Ensure(el Identifiable) string {
	if id := el.ID(); id != "" {
		return id
	}
	id := g.prefix + randomToken()
	el.SetID(id)
	return id
}

// randomToken returns a cryptographically random identity token.
func randomToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("vireo: scopeid: crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}
