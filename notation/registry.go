package notation

import (
	"slices"
	"sync"
)

// Registry decides whether a keyword is recognized.
type Registry interface {
	IsValid(keyword string) bool
}

// KeywordRegistry is a concurrency-safe set of keywords, compared after
// [NormalizeKeyword].
type KeywordRegistry struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewKeywordRegistry returns a registry holding keywords.
func NewKeywordRegistry(keywords ...string) *KeywordRegistry {
	r := &KeywordRegistry{entries: make(map[string]struct{}, len(keywords))}
	r.Register(keywords...)

	return r
}

// DefaultRegistry returns a registry seeded with every keyword that has a
// dedicated handler.
func DefaultRegistry() *KeywordRegistry {
	return NewKeywordRegistry(KnownKeywords()...)
}

// Register adds keywords, ignoring empty ones.
func (r *KeywordRegistry) Register(keywords ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keywords {
		if key := NormalizeKeyword(k); key != "" {
			r.entries[key] = struct{}{}
		}
	}
}

// IsValid reports whether keyword was registered.
func (r *KeywordRegistry) IsValid(keyword string) bool {
	key := NormalizeKeyword(keyword)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]

	return ok
}

// Keywords returns the registered keywords in sorted order.
func (r *KeywordRegistry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}

// acceptAll is used when no registry is configured.
type acceptAll struct{}

func (acceptAll) IsValid(keyword string) bool { return keyword != "" }
