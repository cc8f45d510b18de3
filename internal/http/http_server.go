package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/services/rating"
	"gitlab.com/clawgames.net/internal/core/services/submission"
	"gitlab.com/clawgames.net/internal/handlers"
	"gitlab.com/clawgames.net/internal/handlers/games"
	"gitlab.com/clawgames.net/internal/handlers/ratings"
)

type ServiceProvider struct {
	submissionService submission.ISubmissionService
	ratingService     rating.IRatingService
}

func NewServiceProvider(
	submissionService submission.ISubmissionService,
	ratingService rating.IRatingService,
) *ServiceProvider {
	return &ServiceProvider{
		submissionService: submissionService,
		ratingService:     ratingService,
	}
}

type Server struct {
	router          *mux.Router
	handler         http.Handler
	srv             *http.Server
	Port            int
	ServiceName     string
	MaxBodyBytes    int64
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(cfg *config.HTTPConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.Port,
		ServiceName:     cfg.ServiceName,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.submissionService == nil || s.ServiceProvider.ratingService == nil {
		return errors.New("http server requires submission and rating services")
	}

	r := mux.NewRouter()
	mw := handlers.New(s.MaxBodyBytes, s.logger)
	r.Use(mw.Recover, mw.AccessLog, mw.LimitBody)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	games.
		NewGameHandler(s.ServiceProvider.submissionService, s.logger).
		RegisterRoutes(r)
	ratings.
		NewRatingHandler(s.ServiceProvider.ratingService, s.logger).
		RegisterRoutes(r)

	s.router = r
	s.handler = otelhttp.NewHandler(r, s.ServiceName)
	return nil
}

// Handler returns the instrumented router; Init must have been called
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves in a goroutine. A listen failure other than a clean shutdown
// is sent on the returned channel.
func (s *Server) Start(ctx context.Context) <-chan error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
