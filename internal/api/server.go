// Package api exposes the marketplace over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"pbf-marketplace/internal/common/config"
	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/common/logger"
	"pbf-marketplace/internal/models"
	"pbf-marketplace/internal/services/intake"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequirementService is the part of the intake service the API needs.
type RequirementService interface {
	Submit(ctx context.Context, raw intake.RawRequirement) (*intake.SubmissionResult, error)
	List(ctx context.Context) ([]models.Requirement, error)
}

// FarmerDirectory lists registered farmers.
type FarmerDirectory interface {
	All() []models.Supplier
}

type Dependencies struct {
	Requirements RequirementService
	Farmers      FarmerDirectory
	EmailEnabled bool
	Logger       logger.Logger
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
	// CORSOrigins are the browser origins allowed to call the API; every
	// origin when empty.
	CORSOrigins []string
	Clock       func() time.Time
}

type Server struct {
	Router *mux.Router

	handler      http.Handler
	requirements RequirementService
	farmers      FarmerDirectory
	emailEnabled bool
	logger       logger.Logger
	errors       *apperrors.ErrorHandler
	now          func() time.Time
}

func NewServer(deps Dependencies) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	s := &Server{
		Router:       mux.NewRouter(),
		requirements: deps.Requirements,
		farmers:      deps.Farmers,
		emailEnabled: deps.EmailEnabled,
		logger:       log,
		errors:       apperrors.NewErrorHandler(log),
		now:          now,
	}

	s.Router.Use(requestIDMiddleware, s.accessLogMiddleware)

	api := s.Router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/requirements", s.handleSubmitRequirement).Methods(http.MethodPost)
	api.HandleFunc("/requirements", s.handleListRequirements).Methods(http.MethodGet)
	api.HandleFunc("/farmers", s.handleListFarmers).Methods(http.MethodGet)

	s.Router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.Router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(s.Router)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// NewHTTPServer binds handler to the configured address and timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
}
