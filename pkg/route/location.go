package route

// Location is the router's current address descriptor: a route name plus
// query and path parameters. Treat a Location as immutable once read;
// Patch and the History implementations always construct new values.
type Location struct {
	Name   string
	Query  map[string]string
	Params map[string]string
}

// Clone returns a deep copy of the location. The copy always carries
// non-nil maps so callers can index without guarding.
func (l Location) Clone() Location {
	out := Location{
		Name:   l.Name,
		Query:  make(map[string]string, len(l.Query)),
		Params: make(map[string]string, len(l.Params)),
	}
	for k, v := range l.Query {
		out.Query[k] = v
	}
	for k, v := range l.Params {
		out.Params[k] = v
	}
	return out
}

// QueryValue returns the raw query value for key, or nil when the key is
// absent. The pointer form distinguishes "empty string" from "not present".
func (l Location) QueryValue(key string) *string {
	if v, ok := l.Query[key]; ok {
		return &v
	}
	return nil
}

// ParamValue returns the raw path-parameter value for key, or nil when the
// key is absent.
func (l Location) ParamValue(key string) *string {
	if v, ok := l.Params[key]; ok {
		return &v
	}
	return nil
}

// Equal reports whether two locations carry the same name, query, and
// params. Nil and empty maps compare equal.
func (l Location) Equal(other Location) bool {
	if l.Name != other.Name {
		return false
	}
	if !mapsEqual(l.Query, other.Query) {
		return false
	}
	return mapsEqual(l.Params, other.Params)
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
