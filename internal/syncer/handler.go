package syncer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mahavak/rhonda/internal/logger"
)

// Strategy selects how a fetch is answered.
type Strategy int

const (
	// StrategyStaleWhileRevalidate answers from cache and refreshes in
	// the background. The default for anything unclassified.
	StrategyStaleWhileRevalidate Strategy = iota
	// StrategyNetworkFirst tries the network and falls back to cache.
	StrategyNetworkFirst
	// StrategyCacheFirst answers from cache and only fetches on a miss.
	StrategyCacheFirst
)

// networkFirstPatterns match dynamic content that must be fresh when the
// network allows.
var networkFirstPatterns = []string{
	"/api",
	"/track-",
	"/stats",
}

// cacheFirstPatterns match immutable static assets.
var cacheFirstPatterns = []string{
	".css",
	".js",
	".png",
	".jpg",
	".jpeg",
	".svg",
	".woff",
	".woff2",
}

// Classify picks the strategy for a URL.
func Classify(url string) Strategy {
	for _, p := range networkFirstPatterns {
		if strings.Contains(url, p) {
			return StrategyNetworkFirst
		}
	}
	for _, p := range cacheFirstPatterns {
		if strings.Contains(url, p) {
			return StrategyCacheFirst
		}
	}
	return StrategyStaleWhileRevalidate
}

// Fetcher performs the actual network fetch. Injected so tests can
// simulate offline and flaky servers.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Response, error)
}

// HTTPFetcher is the production Fetcher.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	header := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		header[k] = resp.Header.Get(k)
	}
	return Response{Status: resp.StatusCode, Header: header, Body: body}, nil
}

// Request describes one intercepted fetch.
type Request struct {
	URL string
	// Navigation marks a page-load request, which gets the offline
	// fallback instead of a hard failure.
	Navigation bool
}

// Handler answers fetches through the registry using the strategy the
// URL classifies to.
type Handler struct {
	registry    *Registry
	fetcher     Fetcher
	fallbackURL string
	wg          sync.WaitGroup
}

func NewHandler(registry *Registry, fetcher Fetcher, fallbackURL string) *Handler {
	return &Handler{
		registry:    registry,
		fetcher:     fetcher,
		fallbackURL: fallbackURL,
	}
}

// Precache fetches and stores the given URLs in the live cache.
func (h *Handler) Precache(ctx context.Context, urls []string) error {
	for _, url := range urls {
		resp, err := h.fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to precache %s: %w", url, err)
		}
		if ok2xx(resp) {
			h.registry.Put(url, resp)
		}
	}
	return nil
}

// Handle answers one request.
func (h *Handler) Handle(ctx context.Context, req Request) (Response, error) {
	switch Classify(req.URL) {
	case StrategyNetworkFirst:
		return h.networkFirst(ctx, req)
	case StrategyCacheFirst:
		return h.cacheFirst(ctx, req)
	default:
		return h.staleWhileRevalidate(ctx, req)
	}
}

// Wait blocks until all background revalidations finish, for tests and
// shutdown.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) networkFirst(ctx context.Context, req Request) (Response, error) {
	resp, err := h.fetcher.Fetch(ctx, req.URL)
	if err == nil {
		if ok2xx(resp) {
			h.registry.Put(req.URL, resp)
		}
		return resp, nil
	}

	logger.Debug("Network failed, trying cache", "url", req.URL)
	if cached, ok := h.registry.Get(req.URL); ok {
		return cached, nil
	}

	if req.Navigation {
		if fallback, ok := h.registry.Get(h.fallbackURL); ok {
			return fallback, nil
		}
	}
	return Response{}, err
}

func (h *Handler) cacheFirst(ctx context.Context, req Request) (Response, error) {
	if cached, ok := h.registry.Get(req.URL); ok {
		return cached, nil
	}

	resp, err := h.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return Response{}, err
	}
	if ok2xx(resp) {
		h.registry.Put(req.URL, resp)
	}
	return resp, nil
}

func (h *Handler) staleWhileRevalidate(ctx context.Context, req Request) (Response, error) {
	cached, ok := h.registry.Get(req.URL)
	if !ok {
		resp, err := h.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return Response{}, err
		}
		if ok2xx(resp) {
			h.registry.Put(req.URL, resp)
		}
		return resp, nil
	}

	// Serve stale immediately; refresh in the background. The refresh
	// is fire-and-forget and its failure never affects the returned
	// value.
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		resp, err := h.fetcher.Fetch(context.WithoutCancel(ctx), req.URL)
		if err != nil {
			logger.Debug("Background revalidation failed", "url", req.URL)
			return
		}
		if ok2xx(resp) {
			h.registry.Put(req.URL, resp)
		}
	}()

	return cached, nil
}

func ok2xx(resp Response) bool {
	return resp.Status >= 200 && resp.Status <= 299
}
