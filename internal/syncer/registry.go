package syncer

import (
	"sync"
)

// Response is a cached fetch result.
type Response struct {
	Status int
	Header map[string]string
	Body   []byte
}

// Registry holds response caches keyed by version tag. Activating a
// version drops every other version's cache, mirroring an app upgrade
// where stale assets must not survive.
type Registry struct {
	mu     sync.Mutex
	active string
	caches map[string]map[string]Response
}

func NewRegistry() *Registry {
	return &Registry{
		caches: make(map[string]map[string]Response),
	}
}

// Activate makes version the live cache and deletes all others.
func (r *Registry) Activate(version string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = version
	if r.caches[version] == nil {
		r.caches[version] = make(map[string]Response)
	}
	for v := range r.caches {
		if v != version {
			delete(r.caches, v)
		}
	}
}

// ActiveVersion returns the live cache's version tag.
func (r *Registry) ActiveVersion() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Versions returns the version tags currently holding a cache.
func (r *Registry) Versions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.caches))
	for v := range r.caches {
		out = append(out, v)
	}
	return out
}

// Put stores a response in the live cache. A put before Activate is
// dropped.
func (r *Registry) Put(url string, resp Response) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, ok := r.caches[r.active]
	if !ok {
		return
	}
	cache[url] = resp
}

// Get looks up a response in the live cache.
func (r *Registry) Get(url string) (Response, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, ok := r.caches[r.active]
	if !ok {
		return Response{}, false
	}
	resp, ok := cache[url]
	return resp, ok
}
