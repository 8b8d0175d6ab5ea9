package leaderboard

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/client/apiclient"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

func TestStagesCleared(t *testing.T) {
	cases := map[float64]int{
		0:    0,
		-5:   0,
		0.5:  1,
		20:   1,
		20.1: 2,
		45:   3,
		100:  5,
		250:  5,
	}
	for score, want := range cases {
		assert.Equal(t, want, StagesCleared(score), "score %v", score)
	}
}

func TestBuildView(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{TeamName: "ravens", TeamScore: 130},
		{TeamName: "owls", TeamScore: 45},
		{TeamName: "crows", TeamScore: 20},
		{TeamName: "finches", TeamScore: 0},
	}
	v := BuildView(entries, 3)

	require.Len(t, v.Rows, 4)
	assert.Empty(t, v.Placeholder)
	assert.Equal(t, 4, v.TotalTeams)

	first := v.Rows[0]
	assert.Equal(t, "01", first.RankText)
	assert.Equal(t, Gold, first.Tier)
	assert.True(t, first.TopThree)
	assert.Equal(t, "5/5", first.Progress)
	assert.Equal(t, "100.0 points", first.Score)

	second := v.Rows[1]
	assert.Equal(t, Silver, second.Tier)
	assert.Equal(t, [Stages]bool{true, true, true, false, false}, second.Segments)
	assert.Equal(t, "45.0 points", second.Score)

	assert.Equal(t, Bronze, v.Rows[2].Tier)

	last := v.Rows[3]
	assert.Equal(t, "04", last.RankText)
	assert.Equal(t, Standard, last.Tier)
	assert.False(t, last.TopThree)
	assert.Equal(t, "0/5", last.Progress)
	assert.Equal(t, "0.0 points", last.Score)

	assert.Equal(t, "stagefour", v.Route.Continue)
	assert.Equal(t, "CONTINUE TO STAGE 4", v.Route.ContinueText())
}

func TestBuildViewEmpty(t *testing.T) {
	v := BuildView(nil, 2)
	assert.Empty(t, v.Rows)
	assert.Equal(t, Placeholder, v.Placeholder)
	assert.Equal(t, "website", v.Route.Back)
}

func TestRouteFallsBackToFirstStage(t *testing.T) {
	assert.Equal(t, Route(1), Route(0))
	assert.Equal(t, Route(1), Route(9))
	assert.Equal(t, "stagefive_presentation", Route(5).Continue)
	assert.Equal(t, "PRESENTATION", Route(5).Label)
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaderboard", r.URL.Path)
		_, _ = w.Write([]byte(`[{"Team_Name":"ravens","team_score":60}]`))
	}))
	defer srv.Close()

	v, err := Load(context.Background(), apiclient.New(srv.URL, time.Second), 1)
	require.NoError(t, err)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "ravens", v.Rows[0].TeamName)
	assert.Equal(t, "3/5", v.Rows[0].Progress)
}

func TestLoadFailureShowsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v, err := Load(context.Background(), apiclient.New(srv.URL, time.Second), 2)
	require.Error(t, err)
	assert.Empty(t, v.Rows)
	assert.Equal(t, Placeholder, v.Placeholder)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	v := BuildView([]domain.LeaderboardEntry{{TeamName: "ravens", TeamScore: 40}}, 4)
	require.NoError(t, Render(&buf, v))

	out := buf.String()
	assert.Contains(t, out, "ravens")
	assert.Contains(t, out, "40.0 points")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "CONTINUE TO STAGE 5")

	buf.Reset()
	require.NoError(t, Render(&buf, BuildView(nil, 1)))
	assert.Contains(t, buf.String(), Placeholder)
}
