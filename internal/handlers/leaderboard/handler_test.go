package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

func TestListRanksTeams(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNopLogger()
	teams := secondarytest.NewTeams()
	require.NoError(t, teams.Create(ctx, &domain.Team{Name: "alpha"}))
	require.NoError(t, teams.Create(ctx, &domain.Team{Name: "beta"}))
	board := secondarytest.NewLeaderboard(teams)
	require.NoError(t, board.SaveScore(ctx, "beta", 42.5))

	svc := leaderboard.NewLeaderboardService(board, secondarytest.NewRounds(), secondarytest.NewSubmissions(), secondarytest.NewCache(), time.Minute, logger)
	r := mux.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []domain.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "beta", entries[0].TeamName)
	assert.Equal(t, 42.5, entries[0].TeamScore)
	assert.Equal(t, "alpha", entries[1].TeamName)
}
