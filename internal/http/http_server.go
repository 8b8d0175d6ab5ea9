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

	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	authsvc "gitlab.com/stark-bootcamp.net/internal/core/services/auth"
	"gitlab.com/stark-bootcamp.net/internal/core/services/contest"
	leaderboardsvc "gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/core/services/problem"
	"gitlab.com/stark-bootcamp.net/internal/core/services/registration"
	"gitlab.com/stark-bootcamp.net/internal/core/services/round"
	"gitlab.com/stark-bootcamp.net/internal/core/services/submission"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/auth"
	"gitlab.com/stark-bootcamp.net/internal/handlers/contests"
	"gitlab.com/stark-bootcamp.net/internal/handlers/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/handlers/problems"
	"gitlab.com/stark-bootcamp.net/internal/handlers/rounds"
	"gitlab.com/stark-bootcamp.net/internal/handlers/submissions"
	"gitlab.com/stark-bootcamp.net/internal/handlers/teams"
)

type ServiceProvider struct {
	registration registration.IRegistrationService
	contest      contest.IContestService
	problem      problem.IProblemService
	submission   submission.ISubmissionService
	round        round.IRoundService
	leaderboard  leaderboardsvc.ILeaderboardService
	auth         authsvc.IAuthService
}

func NewServiceProvider(
	registration registration.IRegistrationService,
	contest contest.IContestService,
	problem problem.IProblemService,
	submission submission.ISubmissionService,
	round round.IRoundService,
	leaderboard leaderboardsvc.ILeaderboardService,
	auth authsvc.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		registration: registration,
		contest:      contest,
		problem:      problem,
		submission:   submission,
		round:        round,
		leaderboard:  leaderboard,
		auth:         auth,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	cfg             config.HttpConfig
	logger          primary.Logger
}

func NewServer(cfg config.HttpConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.Port,
		ServiceName:     cfg.ServiceName,
		ServiceProvider: serviceProvider,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	sp := s.ServiceProvider
	mw := handlers.New(sp.auth, handlers.RateLimitConfig{
		Limit:          s.cfg.RateLimit,
		Burst:          s.cfg.RateBurst,
		TrustedProxies: s.cfg.TrustedProxies,
		IdleTTL:        s.cfg.RateLimitIdle,
	}, s.logger)

	r := mux.NewRouter()
	r.Use(mw.AccessLog, handlers.CORS)
	// OPTIONS has to match a route for the CORS middleware to run
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	teams.NewHandler(sp.registration, s.logger).RegisterRoutes(r)
	auth.NewHandler(sp.auth, s.logger).RegisterRoutes(r)
	contests.NewHandler(sp.contest, s.logger).RegisterRoutes(r, mw.JWTMiddleware)
	problems.NewHandler(sp.problem, s.logger).RegisterRoutes(r, mw.JWTMiddleware)
	submissions.NewHandler(sp.submission, s.logger).RegisterRoutes(r, mw.RateLimit)
	rounds.NewHandler(sp.round, s.cfg.MaxUploadBytes, s.logger).RegisterRoutes(r, mw.RateLimit, mw.JWTMiddleware)
	leaderboard.NewHandler(sp.leaderboard, s.logger).RegisterRoutes(r)

	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the port and serves in the background. Bind errors are
// returned, later serve errors are logged.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("server not initialised")
	}
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
