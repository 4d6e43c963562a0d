// Package api exposes the REST surface: opportunity CRUD, dashboard metric
// queries, and the on-demand collection-risk analysis. The boundary speaks
// snake_case JSON; the normalizer translates to and from canonical records.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/sells-group/sales-dashboard/internal/risk"
	"github.com/sells-group/sales-dashboard/internal/seed"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
	"github.com/sells-group/sales-dashboard/internal/store"
)

// Server wires the handlers to their collaborators.
type Server struct {
	store    store.Store
	gen      *seed.Generator
	analyzer *risk.Analyzer
	riskCfg  risk.Config
	limiter  *rate.Limiter
	dashOpts snapshot.MetricsOptions
	now      func() time.Time
}

// Options configures a Server.
type Options struct {
	Store          store.Store
	Generator      *seed.Generator
	RiskConfig     risk.Config
	AnalyzeRate    float64
	AnalyzeBurst   int
	MetricsOptions snapshot.MetricsOptions
	Now            func() time.Time
}

// NewServer creates a Server. A nil Now defaults to time.Now.
func NewServer(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AnalyzeRate <= 0 {
		opts.AnalyzeRate = 1
	}
	if opts.AnalyzeBurst <= 0 {
		opts.AnalyzeBurst = 1
	}
	return &Server{
		store:    opts.Store,
		gen:      opts.Generator,
		analyzer: risk.NewAnalyzer(opts.RiskConfig),
		riskCfg:  opts.RiskConfig,
		limiter:  rate.NewLimiter(rate.Limit(opts.AnalyzeRate), opts.AnalyzeBurst),
		dashOpts: opts.MetricsOptions,
		now:      opts.Now,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", s.handleListOpportunities)
			r.Post("/", s.handleCreateOpportunity)
			r.Get("/{id}", s.handleGetOpportunity)
			r.Put("/{id}", s.handleUpdateOpportunity)
			r.Delete("/{id}", s.handleDeleteOpportunity)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", s.handleMetrics)
			r.Get("/trends", s.handleTrends)
			r.Get("/leaderboard", s.handleLeaderboard)
			r.Get("/contracts", s.handleContracts)
		})

		r.Post("/contracts/{id}/analyze", s.handleAnalyzeContract)
	})

	return r
}

// loadSnapshot materializes a fresh view for a request.
func (s *Server) loadSnapshot(r *http.Request) *snapshot.Snapshot {
	return snapshot.Load(r.Context(), s.store, s.gen, s.now())
}
