package route

// Mutation describes how one parameter map of a Location changes during a
// patch. The zero value leaves the map untouched. Merge overlays keys onto
// the current map, where a nil value deletes the key; Clear empties the map
// entirely.
type Mutation struct {
	set   map[string]*string
	clear bool
}

// Keep returns a mutation that leaves the map unchanged. Equivalent to the
// zero value; provided for readable call sites.
func Keep() Mutation {
	return Mutation{}
}

// Clear returns a mutation that empties the map.
func Clear() Mutation {
	return Mutation{clear: true}
}

// Merge returns a mutation that shallow-merges kv onto the current map,
// overwriting by key. A nil value removes the key.
func Merge(kv map[string]*string) Mutation {
	return Mutation{set: kv}
}

// Set returns a mutation that merges a single key/value pair.
func Set(key, value string) Mutation {
	return Merge(map[string]*string{key: &value})
}

// Unset returns a mutation that removes a single key.
func Unset(key string) Mutation {
	return Merge(map[string]*string{key: nil})
}

// Str returns a pointer to s, for building Merge maps inline.
func Str(s string) *string {
	return &s
}

// apply builds the patched map from the current one. The current map is
// never mutated.
func (m Mutation) apply(cur map[string]string) map[string]string {
	out := make(map[string]string, len(cur)+len(m.set))
	if !m.clear {
		for k, v := range cur {
			out[k] = v
		}
	}
	for k, v := range m.set {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = *v
	}
	return out
}

// Patch builds a new Location by applying query and params mutations to the
// current one. An empty name preserves the current route name. Patch is
// pure: it never navigates and never mutates cur.
func Patch(cur Location, query, params Mutation, name string) Location {
	out := Location{
		Name:   cur.Name,
		Query:  query.apply(cur.Query),
		Params: params.apply(cur.Params),
	}
	if name != "" {
		out.Name = name
	}
	return out
}
