package urlsync

import (
	"github.com/vireo-ui/vireo/pkg/reactive"
	"github.com/vireo-ui/vireo/pkg/route"
	"github.com/vireo-ui/vireo/pkg/serial"
)

// FieldDef describes one field of a synchronized object: the bound name
// (':'-prefixed for path parameters), its codec definition, and the default
// used when the URL is silent on the key.
type FieldDef struct {
	Name    string
	Format  serial.Def
	Default any
}

// NewObject builds one reactive aggregate whose fields are each
// independently bound to URL parameters. Field values are dynamically typed
// per the codec table (string, float64, int, bool, decoded JSON).
//
// Options apply to every field; combine with ModeFunc to decide push versus
// replace per field:
//
//	filters := urlsync.NewObject(m, []urlsync.FieldDef{
//	    {Name: "q", Format: serial.String, Default: ""},
//	    {Name: "page", Format: serial.Int, Default: 1},
//	}, urlsync.ModeFunc(func(field string, _ any) urlsync.Mode {
//	    if field == "q" {
//	        return urlsync.ModeReplace
//	    }
//	    return urlsync.ModePush
//	}))
//
// Field changes are not batched: each field change issues its own
// navigation call.
func NewObject(m *Mirror, defs []FieldDef, opts ...BindOption) *reactive.Object {
	if m == nil {
		panic("vireo: urlsync: NewObject on nil mirror")
	}
	obj := reactive.NewObject()

	for _, def := range defs {
		b := m.newBinding(def.Name, def.Format, opts)
		key := b.key

		b.lastWritten = b.raw(m.hist.Current())

		// URL wins over the supplied default; a silent URL takes the
		// default and, when it serializes non-null, one write.
		if raw := b.lastWritten; raw != nil {
			obj.Define(key, b.codec.Decode(raw))
		} else {
			obj.Define(key, def.Default)
			if enc, ok := b.codec.Encode(def.Default); ok {
				b.writeRaw(&enc, def.Default)
			}
		}

		cancelURL := m.hist.Watch(func(loc route.Location) {
			raw := b.raw(loc)
			if rawEqual(raw, b.last()) {
				echoSuppressedTotal.Inc()
				return
			}
			syncsTotal.WithLabelValues(directionFromURL).Inc()
			obj.Set(key, b.codec.Decode(raw))
		})

		cancelField := obj.Watch(func(field string, value any) {
			if field != key {
				return
			}
			b.sync(value)
		})

		b.cancels = []func(){cancelURL, cancelField}
		m.register(b)
	}

	return obj
}
