// Package web provides the demo HTTP surface. Handlers return values for
// the normalizer instead of writing responses themselves; the router wires
// every path, including NotFound and MethodNotAllowed, through the same
// envelope pipeline.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/artpar/japi"
	"github.com/artpar/japi/adapters/auth"
	"github.com/artpar/japi/httperr"
	"github.com/artpar/japi/ports"
)

// Handler provides the demo API endpoints.
type Handler struct {
	notes      ports.NoteStore
	tokens     *auth.TokenService
	hasher     ports.Hasher
	ids        ports.IDGenerator
	clock      ports.Clock
	adminEmail string
	adminHash  []byte
	logger     zerolog.Logger
	wrapper    japi.Wrapper

	metrics     http.Handler
	metricsPath string
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Notes      ports.NoteStore
	Tokens     *auth.TokenService
	Hasher     ports.Hasher
	IDs        ports.IDGenerator
	Clock      ports.Clock
	AdminEmail string
	AdminHash  []byte
	Logger     zerolog.Logger
	Observer   ports.Observer
	Options    japi.Options

	// Metrics, when set, is mounted at MetricsPath.
	Metrics     http.Handler
	MetricsPath string
}

// NewHandler creates a new demo API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		notes:      deps.Notes,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		ids:        deps.IDs,
		clock:      deps.Clock,
		adminEmail: deps.AdminEmail,
		adminHash:  deps.AdminHash,
		logger:     deps.Logger,
		wrapper: japi.Wrapper{
			Options:  deps.Options,
			Logger:   deps.Logger,
			Observer: deps.Observer,
		},
		metrics:     deps.Metrics,
		metricsPath: deps.MetricsPath,
	}
}

// Router assembles the demo routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	wrap := h.wrapper.Wrap

	r.NotFound(wrap(func(*http.Request) any { return httperr.NotFound }))
	r.MethodNotAllowed(wrap(func(*http.Request) any { return httperr.MethodNotAllowed }))

	r.Get("/", wrap(h.home))
	r.Get("/teapot", wrap(h.teapot))
	r.Post("/login", wrap(h.login))
	r.Get("/notes/{id}/public", wrap(h.publicNote))

	r.Group(func(pr chi.Router) {
		pr.Use(h.requireToken)
		pr.Get("/notes", wrap(h.listNotes))
		pr.Get("/notes/{id}", wrap(h.getNote))
		pr.Post("/notes", wrap(h.createNote))
	})

	if h.metrics != nil && h.metricsPath != "" {
		r.Method(http.MethodGet, h.metricsPath, h.metrics)
	}
	return r
}
