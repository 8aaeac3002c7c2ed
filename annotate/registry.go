package annotate

import (
	"reflect"
	"sort"
	"sync"
)

// Key identifies a handler by declaring type and member name.
type Key struct {
	Type   reflect.Type
	Member string
}

// String returns "Type.Member".
func (k Key) String() string {
	return typeName(k.Type) + "." + k.Member
}

// Registry stores patch sequences per handler. Sequences are created lazily on
// first registration, only ever appended to, and read in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key][]Patch
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key][]Patch)}
}

// Default is the process-wide registry used by the package-level functions.
var Default = NewRegistry()

// Register appends patches to the sequence of target's member.
// Target may be a value, a pointer, or a reflect.Type.
func (r *Registry) Register(target any, member string, patches ...Patch) {
	if len(patches) == 0 {
		return
	}
	key := Key{Type: normalizeType(target), Member: member}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[Key][]Patch)
	}
	r.entries[key] = append(r.entries[key], patches...)
}

// Lookup returns a copy of the sequence registered for target's member.
// The result is empty, never nil, when nothing was registered.
func (r *Registry) Lookup(target any, member string) []Patch {
	return r.lookup(Key{Type: normalizeType(target), Member: member})
}

func (r *Registry) lookup(key Key) []Patch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seq := r.entries[key]
	out := make([]Patch, len(seq))
	copy(out, seq)
	return out
}

// Len returns the number of keys with at least one patch.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Keys returns all annotated keys sorted by their string form.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Apply folds the patches registered for route's handler into base, in
// registration order, and returns the result. When no patches exist base is
// returned as is. base itself is never modified.
func (r *Registry) Apply(base Operation, route Route) Operation {
	acc := base
	for _, p := range r.lookup(route.Key()) {
		acc = p.apply(acc, route)
	}
	return acc
}

// Register appends patches to target's member in the Default registry.
func Register(target any, member string, patches ...Patch) {
	Default.Register(target, member, patches...)
}

// Lookup returns the sequence of target's member from the Default registry.
func Lookup(target any, member string) []Patch {
	return Default.Lookup(target, member)
}

// Apply folds the Default registry's patches for route into base.
func Apply(base Operation, route Route) Operation {
	return Default.Apply(base, route)
}

// TypeOf returns the declaring type used as key for target: the type itself
// for a reflect.Type, otherwise the dynamic type, with pointers dereferenced.
func TypeOf(target any) reflect.Type {
	return normalizeType(target)
}

// normalizeType resolves target to the declaring type, dereferencing
// pointer types.
func normalizeType(target any) reflect.Type {
	var t reflect.Type
	switch v := target.(type) {
	case nil:
		return nil
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(target)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
