package testutil

import (
	"net/http"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Route is a canned response.
type Route struct {
	Status      int
	ContentType string
	Body        string
}

// Router answers hijacked browser requests from canned routes keyed by URL
// path, whatever the host. It lets browser tests run against
// https://example.com without network access.
type Router struct {
	mu     sync.Mutex
	routes map[string]Route
	misses []string

	logger zerolog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouterLogger logs every matched and unmatched request at debug level.
func WithRouterLogger(logger zerolog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a Router with no routes. Unmatched requests get a 404
// and are recorded in Misses.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		routes: make(map[string]Route),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Handle registers route for path.
func (r *Router) Handle(path string, route Route) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes[path] = route
	return r
}

// ServeHTML answers path with a 200 HTML page.
func (r *Router) ServeHTML(path, html string) *Router {
	return r.Handle(path, Route{Status: http.StatusOK, ContentType: "text/html; charset=utf-8", Body: html})
}

// ServeFixture answers path with the named fixture.
func (r *Router) ServeFixture(path, name string) *Router {
	return r.ServeHTML(path, MustLoadFixture(name))
}

// Misses returns the URLs that matched no route.
func (r *Router) Misses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.misses...)
}

// Middleware returns a Rod hijack handler that serves the routes.
// Use with router.MustAdd("*", r.Middleware()).
func (r *Router) Middleware() func(*rod.Hijack) {
	return func(ctx *rod.Hijack) {
		reqURL := ctx.Request.URL()

		r.mu.Lock()
		route, found := r.routes[reqURL.Path]
		if !found {
			r.misses = append(r.misses, reqURL.String())
		}
		r.mu.Unlock()

		if !found {
			r.logger.Debug().Str("url", reqURL.String()).Msg("no route")
			serve(ctx, Route{
				Status:      http.StatusNotFound,
				ContentType: "application/json",
				Body:        `{"error": "no route for URL"}`,
			})
			return
		}

		r.logger.Debug().Str("url", reqURL.String()).Int("status", route.Status).Msg("matched")
		serve(ctx, route)
	}
}

func serve(ctx *rod.Hijack, route Route) {
	payload := ctx.Response.Payload()
	payload.ResponseCode = route.Status
	payload.ResponseHeaders = []*proto.FetchHeaderEntry{
		{Name: "Content-Type", Value: route.ContentType},
	}
	payload.Body = []byte(route.Body)
}
