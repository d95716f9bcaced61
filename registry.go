package crs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Registry indexes CRS by name, alias and authority code. Keys are case
// insensitive. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex // serializes Register
	entries cmap.ConcurrentMap[string, *CRS]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: cmap.New[*CRS]()}
}

func registryKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func keysOf(c *CRS) []string {
	keys := []string{registryKey(c.name)}
	for _, a := range c.aliases {
		keys = append(keys, registryKey(a))
	}
	for _, id := range c.identifiers {
		keys = append(keys, registryKey(id.String()))
	}
	return keys
}

// Register indexes c under its name, aliases and identifiers. It fails with
// ErrAlreadyRegistered, registering nothing, when a key is bound to another
// CRS. Registering the same CRS twice is a no-op.
func (r *Registry) Register(c *CRS) error {
	if c == nil {
		return fmt.Errorf("%w: nil CRS", ErrInvalidParameter)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := keysOf(c)
	for _, k := range keys {
		if prev, ok := r.entries.Get(k); ok && prev != c {
			return fmt.Errorf("%w: %q is %s", ErrAlreadyRegistered, k, prev)
		}
	}
	for _, k := range keys {
		r.entries.Set(k, c)
	}
	return nil
}

// Lookup returns the CRS registered under a name, alias or code such as
// "EPSG:4326".
func (r *Registry) Lookup(key string) (*CRS, bool) {
	return r.entries.Get(registryKey(key))
}

// Find returns the first registered CRS equal to c under mode, visiting keys
// in sorted order.
func (r *Registry) Find(c *CRS, mode ComparisonMode) (*CRS, bool) {
	keys := r.entries.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		if v, ok := r.entries.Get(k); ok && Equal(v, c, mode) {
			return v, true
		}
	}
	return nil, false
}

// All returns each registered CRS once, sorted by name.
func (r *Registry) All() []*CRS {
	seen := make(map[*CRS]struct{})
	var all []*CRS
	for item := range r.entries.IterBuffered() {
		if _, ok := seen[item.Val]; ok {
			continue
		}
		seen[item.Val] = struct{}{}
		all = append(all, item.Val)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}

// Len returns the number of keys.
func (r *Registry) Len() int {
	return r.entries.Count()
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	for _, c := range WellKnown() {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
})

// DefaultRegistry returns the process-wide registry, seeded with the
// well-known CRS.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}
