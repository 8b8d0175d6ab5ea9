package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/core/services/submission"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type fixture struct {
	router *mux.Router
	board  *leaderboard.LeaderboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewNopLogger()

	teams := secondarytest.NewTeams()
	require.NoError(t, teams.Create(ctx, &domain.Team{Name: "acme"}))
	problems := secondarytest.NewProblems()
	require.NoError(t, problems.Save(ctx, &domain.Problem{ID: 1, Title: "Sum", Score: 20}))
	subs := secondarytest.NewSubmissions()

	board := leaderboard.NewLeaderboardService(
		secondarytest.NewLeaderboard(teams),
		secondarytest.NewRounds(),
		subs,
		secondarytest.NewCache(),
		time.Minute,
		logger,
	)
	svc := submission.NewSubmissionService(teams, problems, subs, board, "con", logger)

	r := mux.NewRouter()
	noop := func(next http.Handler) http.Handler { return next }
	NewHandler(svc, logger).RegisterRoutes(r, noop)
	return &fixture{router: r, board: board}
}

func (f *fixture) post(body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body)))
	return rec
}

func TestSubmitPassedScoresProblem(t *testing.T) {
	f := newFixture(t)

	rec := f.post(`{"Team_Name":"acme","contest_id":"con","problem_id":1,"code":"print(3)","language":"python","status":"PASSED"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved domain.CodeSubmission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, 20, saved.Score)

	entries, err := f.board.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 20.0, entries[0].TeamScore)
}

func TestSubmitErrors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.post(`{"Team_Name":"ghost","problem_id":1,"status":"failed"}`).Code)
	assert.Equal(t, http.StatusNotFound, f.post(`{"Team_Name":"acme","problem_id":7,"status":"failed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.post(`{"Team_Name":"acme","problem_id":1,"status":"maybe"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.post(`{"Team_Name":" ","problem_id":1,"status":"failed"}`).Code)
}
