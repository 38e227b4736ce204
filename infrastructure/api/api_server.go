package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go"
	apimiddleware "github.com/helixml/trieve-go/infrastructure/api/middleware"
	v1 "github.com/helixml/trieve-go/infrastructure/api/v1"
	"github.com/helixml/trieve-go/internal/config"
	mcpinternal "github.com/helixml/trieve-go/internal/mcp"
)

// APIServer provides an HTTP API backed by a model Catalog.
type APIServer struct {
	catalog      *trieve.Catalog
	cfg          config.AppConfig
	version      string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       zerolog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Catalog. version is
// reported by the health check and the MCP server.
func NewAPIServer(catalog *trieve.Catalog, cfg config.AppConfig, version string) *APIServer {
	return &APIServer{
		catalog: catalog,
		cfg:     cfg,
		version: version,
		logger:  catalog.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.cfg.CORSOrigins(),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         300,
		}))
		r.Use(apimiddleware.Logging(a.logger))

		r.Get("/healthz", a.health)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(a.cfg.RequestTimeout()))
			r.Mount("/models", v1.NewModelsRouter(a.catalog, a.cfg.MaxBodyBytes()).Routes())
		})

		if doc := a.catalog.Document(); doc != nil {
			r.Mount("/docs", NewDocsRouter(doc, "/docs/openapi.yaml", a.logger).Routes())
		}

		// No timeout here: MCP streams responses and sets its own session
		// headers, which chi's Timeout wrapper breaks.
		mcpSrv := mcpinternal.NewServer(a.catalog, a.version, a.logger)
		r.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
	})
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"version": a.version,
		"models":  len(a.catalog.Names()),
	}
	if doc := a.catalog.Document(); doc != nil {
		body["openapi_version"] = doc.Version()
	}
	apimiddleware.WriteJSON(w, http.StatusOK, body)
}

// ListenAndServe starts the HTTP server on the configured address.
func (a *APIServer) ListenAndServe() error {
	server := NewServer(a.cfg.Addr(), a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
