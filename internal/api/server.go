package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Kamal2131/langchain-neo4j/internal/company"
	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/engine"
	"github.com/Kamal2131/langchain-neo4j/internal/jobs"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Server is the HTTP front of the question-answering service.
type Server struct {
	engine   *engine.Engine
	runner   *jobs.Runner
	company  *company.Directory
	cfg      *config.Config
	logger   *observability.TracedLogger
	metrics  *observability.Metrics
	validate *validator.Validate
	handler  http.Handler
}

// NewServer creates a Server and builds its routes. metrics may be nil, in
// which case /metrics is not served.
func NewServer(cfg *config.Config, eng *engine.Engine, runner *jobs.Runner,
	logger *observability.TracedLogger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	s := &Server{
		engine:   eng,
		runner:   runner,
		company:  company.NewDirectory(eng.Graph(), company.WithLogger(logger.Named("company"))),
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
	}
	s.handler = cors(cfg.Server.CORSOrigins, s.routes())
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, s.recoverer, s.instrument)

	router.HandleFunc("/health", s.handleRootHealth).Methods(http.MethodGet)
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		router.Handle(s.metricsPath(), s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := router.PathPrefix(APIPrefix).Subrouter()
	api.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/query/examples", s.handleExamples).Methods(http.MethodGet)
	api.HandleFunc("/query/async", s.handleAsyncQuery).Methods(http.MethodPost)
	api.HandleFunc("/query/tasks/{id}", s.handleTaskStatus).Methods(http.MethodGet)
	api.HandleFunc("/query/tasks/{id}/result", s.handleTaskResult).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/health/schema", s.handleSchemaStats).Methods(http.MethodGet)
	api.HandleFunc("/schema", s.handleSchema).Methods(http.MethodGet)

	kb := api.PathPrefix("/company").Subrouter()
	kb.HandleFunc("/employees", s.handleEmployees).Methods(http.MethodGet)
	kb.HandleFunc("/employees/{email}/projects", s.handleEmployeeProjects).Methods(http.MethodGet)
	kb.HandleFunc("/projects", s.handleProjects).Methods(http.MethodGet)
	kb.HandleFunc("/projects/{id}/team", s.handleProjectTeam).Methods(http.MethodGet)
	kb.HandleFunc("/skills/{skill}/experts", s.handleSkillExperts).Methods(http.MethodGet)
	kb.HandleFunc("/departments/stats", s.handleDepartmentStats).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
	})

	return router
}

func (s *Server) metricsPath() string {
	if s.cfg.Metrics.Path == "" {
		return "/metrics"
	}
	return s.cfg.Metrics.Path
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

// Run serves HTTP until ctx is done, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
