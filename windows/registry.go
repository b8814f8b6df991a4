package windows

import (
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Registry maps labels to live windows. Only the Factory inserts and only the
// destroy path in the Controller removes.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]Window
}

func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]Window)}
}

func (r *Registry) Lookup(label string) (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[label]
	return w, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

func (r *Registry) ContainsPrefix(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for label := range r.windows {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.windows)
}

// Snapshot returns the open windows at call time.
func (r *Registry) Snapshot() []Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.windows)
}

func (r *Registry) labelSet() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := make(map[string]struct{}, len(r.windows))
	for label := range r.windows {
		set[label] = struct{}{}
	}
	return set
}

func (r *Registry) insert(w Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[w.Label()] = w
}

func (r *Registry) remove(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.windows, label)
}
