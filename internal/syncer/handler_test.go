package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// stubFetcher serves canned responses and can simulate being offline.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]Response
	offline   bool
	fetches   []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, url)
	if f.offline {
		return Response{}, errors.New("connection refused")
	}
	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}
	return Response{Status: 404}, nil
}

func (f *stubFetcher) setOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
}

func (f *stubFetcher) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

func setupHandler(t *testing.T) (*Handler, *stubFetcher, *Registry) {
	t.Helper()
	registry := NewRegistry()
	registry.Activate("v1")
	fetcher := &stubFetcher{responses: map[string]Response{
		"/":             {Status: 200, Body: []byte("index")},
		"/offline.html": {Status: 200, Body: []byte("offline page")},
		"/app.css":      {Status: 200, Body: []byte("styles")},
		"/api/stats":    {Status: 200, Body: []byte("fresh stats")},
	}}
	return NewHandler(registry, fetcher, "/offline.html"), fetcher, registry
}

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want Strategy
	}{
		{"/api/stats", StrategyNetworkFirst},
		{"/track-supplement", StrategyNetworkFirst},
		{"/stats", StrategyNetworkFirst},
		{"/app.css", StrategyCacheFirst},
		{"/bundle.js", StrategyCacheFirst},
		{"/icon.svg", StrategyCacheFirst},
		{"/fonts/inter.woff2", StrategyCacheFirst},
		{"/", StrategyStaleWhileRevalidate},
		{"/about.html", StrategyStaleWhileRevalidate},
	}
	for _, tc := range cases {
		if got := Classify(tc.url); got != tc.want {
			t.Errorf("Classify(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestNetworkFirst(t *testing.T) {
	t.Run("online serves fresh and caches", func(t *testing.T) {
		handler, _, registry := setupHandler(t)

		resp, err := handler.Handle(context.Background(), Request{URL: "/api/stats"})
		if err != nil {
			t.Fatalf("Handle() returned unexpected error: %v", err)
		}
		if string(resp.Body) != "fresh stats" {
			t.Errorf("body = %q, want fresh stats", resp.Body)
		}
		if _, ok := registry.Get("/api/stats"); !ok {
			t.Error("successful response was not cached")
		}
	})

	t.Run("offline falls back to cache", func(t *testing.T) {
		handler, fetcher, _ := setupHandler(t)
		handler.Handle(context.Background(), Request{URL: "/api/stats"})

		fetcher.setOffline(true)
		resp, err := handler.Handle(context.Background(), Request{URL: "/api/stats"})
		if err != nil {
			t.Fatalf("Handle() returned unexpected error while offline: %v", err)
		}
		if string(resp.Body) != "fresh stats" {
			t.Errorf("offline body = %q, want the cached copy", resp.Body)
		}
	})

	t.Run("offline navigation gets the fallback page", func(t *testing.T) {
		handler, fetcher, _ := setupHandler(t)
		if err := handler.Precache(context.Background(), []string{"/offline.html"}); err != nil {
			t.Fatalf("Precache() returned unexpected error: %v", err)
		}

		fetcher.setOffline(true)
		resp, err := handler.Handle(context.Background(), Request{URL: "/api/fresh-page", Navigation: true})
		if err != nil {
			t.Fatalf("Handle() returned unexpected error: %v", err)
		}
		if string(resp.Body) != "offline page" {
			t.Errorf("navigation fallback body = %q, want offline page", resp.Body)
		}
	})

	t.Run("offline with no cache fails", func(t *testing.T) {
		handler, fetcher, _ := setupHandler(t)
		fetcher.setOffline(true)

		if _, err := handler.Handle(context.Background(), Request{URL: "/api/stats"}); err == nil {
			t.Error("Handle() returned a response with no network and no cache")
		}
	})
}

func TestCacheFirst(t *testing.T) {
	handler, fetcher, _ := setupHandler(t)

	// First request misses and fetches.
	if _, err := handler.Handle(context.Background(), Request{URL: "/app.css"}); err != nil {
		t.Fatalf("Handle() returned unexpected error: %v", err)
	}
	before := fetcher.fetchCount()

	// Second request is answered from cache without touching the network.
	resp, err := handler.Handle(context.Background(), Request{URL: "/app.css"})
	if err != nil {
		t.Fatalf("Handle() returned unexpected error: %v", err)
	}
	if string(resp.Body) != "styles" {
		t.Errorf("body = %q, want styles", resp.Body)
	}
	if fetcher.fetchCount() != before {
		t.Error("cache-first hit still fetched from the network")
	}
}

func TestStaleWhileRevalidate(t *testing.T) {
	handler, fetcher, registry := setupHandler(t)

	// Cold cache fetches synchronously.
	resp, err := handler.Handle(context.Background(), Request{URL: "/"})
	if err != nil {
		t.Fatalf("Handle() returned unexpected error: %v", err)
	}
	if string(resp.Body) != "index" {
		t.Errorf("body = %q, want index", resp.Body)
	}

	// Change the server copy; the next request still serves the stale
	// body and refreshes behind the scenes.
	fetcher.mu.Lock()
	fetcher.responses["/"] = Response{Status: 200, Body: []byte("index v2")}
	fetcher.mu.Unlock()

	resp, err = handler.Handle(context.Background(), Request{URL: "/"})
	if err != nil {
		t.Fatalf("Handle() returned unexpected error: %v", err)
	}
	if string(resp.Body) != "index" {
		t.Errorf("stale body = %q, want the cached copy", resp.Body)
	}

	handler.Wait()
	if cached, _ := registry.Get("/"); string(cached.Body) != "index v2" {
		t.Errorf("cache after revalidation = %q, want index v2", cached.Body)
	}
}

func TestRegistryActivate(t *testing.T) {
	registry := NewRegistry()

	t.Run("put before activate is dropped", func(t *testing.T) {
		registry.Put("/x", Response{Status: 200})
		if _, ok := registry.Get("/x"); ok {
			t.Error("Get() found a response cached before Activate")
		}
	})

	t.Run("activation drops other versions", func(t *testing.T) {
		registry.Activate("v1")
		registry.Put("/x", Response{Status: 200, Body: []byte("old")})

		registry.Activate("v2")
		if _, ok := registry.Get("/x"); ok {
			t.Error("v1 entry survived activation of v2")
		}
		if got := registry.Versions(); len(got) != 1 || got[0] != "v2" {
			t.Errorf("Versions() = %v, want [v2]", got)
		}
		if registry.ActiveVersion() != "v2" {
			t.Errorf("ActiveVersion() = %s, want v2", registry.ActiveVersion())
		}
	})
}
