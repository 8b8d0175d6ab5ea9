package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/crypto"
	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/auth"
	"gitlab.com/stark-bootcamp.net/internal/core/services/contest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/core/services/problem"
	"gitlab.com/stark-bootcamp.net/internal/core/services/registration"
	"gitlab.com/stark-bootcamp.net/internal/core/services/round"
	"gitlab.com/stark-bootcamp.net/internal/core/services/submission"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	logger := logging.NewNopLogger()
	teams := secondarytest.NewTeams()
	rounds := secondarytest.NewRounds()
	subs := secondarytest.NewSubmissions()
	problems := secondarytest.NewProblems()
	board := leaderboard.NewLeaderboardService(secondarytest.NewLeaderboard(teams), rounds, subs, secondarytest.NewCache(), time.Minute, logger)
	jwtCfg := &config.JwtConfig{Secret: "k", TokenTTL: time.Hour, AdminUser: "admin"}

	sp := NewServiceProvider(
		registration.NewRegistrationService(teams, board, logger),
		contest.NewContestService(secondarytest.NewContests(), logger),
		problem.NewProblemService(problems, "con", logger),
		submission.NewSubmissionService(teams, problems, subs, board, "con", logger),
		round.NewRoundService(teams, rounds, secondarytest.NewFiles(), board, logger),
		board,
		auth.NewLocalAuthService(jwtCfg, crypto.NewJWTService(jwtCfg), logger),
	)
	srv := NewServer(config.HttpConfig{Port: 0, ServiceName: "test", MaxUploadBytes: 1 << 20, RateLimit: 100, RateBurst: 100}, *sp, logger)
	require.NoError(t, srv.Init())
	return srv
}

func TestRoutesAreWired(t *testing.T) {
	h := newServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"Team_Name":"acme"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Team_Name":"acme"`)
}

func TestAdminRoutesNeedToken(t *testing.T) {
	h := newServer(t).Handler()
	for _, target := range []string{"/contest", "/problem", "/grade"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/round_2", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStartAndStop(t *testing.T) {
	srv := newServer(t)
	require.NoError(t, srv.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Stop(ctx))
}
