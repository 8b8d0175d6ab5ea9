package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type fixture struct {
	teams       *secondarytest.Teams
	rounds      *secondarytest.Rounds
	submissions *secondarytest.Submissions
	board       *secondarytest.Leaderboard
	cache       *secondarytest.Cache
	svc         *LeaderboardService
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	f := &fixture{
		teams:       secondarytest.NewTeams(),
		rounds:      secondarytest.NewRounds(),
		submissions: secondarytest.NewSubmissions(),
		cache:       secondarytest.NewCache(),
	}
	f.board = secondarytest.NewLeaderboard(f.teams)
	for _, name := range names {
		require.NoError(t, f.teams.Create(context.Background(), &domain.Team{Name: name}))
	}
	f.svc = NewLeaderboardService(f.board, f.rounds, f.submissions, f.cache, time.Minute, logging.NewNopLogger())
	return f
}

func TestRecalculateSumsStageOneAndRounds(t *testing.T) {
	f := newFixture(t, "acme")
	ctx := context.Background()

	require.NoError(t, f.submissions.Save(ctx, &domain.CodeSubmission{TeamName: "acme", Score: 10}))
	require.NoError(t, f.submissions.Save(ctx, &domain.CodeSubmission{TeamName: "acme", Score: 20}))
	require.NoError(t, f.rounds.Upsert(ctx, &domain.RoundRecord{Round: domain.Round2, TeamName: "acme", Score: 15}))
	require.NoError(t, f.rounds.Upsert(ctx, &domain.RoundRecord{Round: domain.Round4, TeamName: "acme", Score: 5.5}))

	total, err := f.svc.Recalculate(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 40.5, total)
	assert.Equal(t, 1, f.cache.Invalidated)

	entries, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{{TeamName: "acme", TeamScore: 40.5}}, entries)
}

func TestListServesFromCacheUntilInvalidated(t *testing.T) {
	f := newFixture(t, "alpha", "beta")
	ctx := context.Background()

	first, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, f.board.Lists)

	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.board.Lists)

	require.NoError(t, f.rounds.Upsert(ctx, &domain.RoundRecord{Round: domain.Round3, TeamName: "beta", Score: 30}))
	_, err = f.svc.Recalculate(ctx, "beta")
	require.NoError(t, err)

	ranked, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.board.Lists)
	assert.Equal(t, "beta", ranked[0].TeamName)
	assert.Equal(t, "alpha", ranked[1].TeamName)
}

func TestRefreshWarmsCache(t *testing.T) {
	f := newFixture(t, "solo")
	ctx := context.Background()

	require.NoError(t, f.svc.Refresh(ctx))
	cached, ok, err := f.cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []domain.LeaderboardEntry{{TeamName: "solo"}}, cached)
}

// gatedBoard holds List open after reading so a score change can land
// between the read and the cache write.
type gatedBoard struct {
	secondary.LeaderboardPort
	listed  chan struct{}
	release chan struct{}
	saved   chan struct{}
}

func (g *gatedBoard) List(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := g.LeaderboardPort.List(ctx)
	g.listed <- struct{}{}
	<-g.release
	return entries, err
}

func (g *gatedBoard) SaveScore(ctx context.Context, teamName string, score float64) error {
	err := g.LeaderboardPort.SaveScore(ctx, teamName, score)
	g.saved <- struct{}{}
	return err
}

func TestRefreshDoesNotCacheSnapshotOlderThanScoreChange(t *testing.T) {
	f := newFixture(t, "acme")
	ctx := context.Background()
	gate := &gatedBoard{
		LeaderboardPort: f.board,
		listed:          make(chan struct{}, 1),
		release:         make(chan struct{}),
		saved:           make(chan struct{}, 1),
	}
	svc := NewLeaderboardService(gate, f.rounds, f.submissions, f.cache, time.Minute, logging.NewNopLogger())
	require.NoError(t, f.rounds.Upsert(ctx, &domain.RoundRecord{Round: domain.Round2, TeamName: "acme", Score: 12}))

	refreshed := make(chan error, 1)
	go func() { refreshed <- svc.Refresh(ctx) }()
	<-gate.listed

	recalculated := make(chan error, 1)
	go func() {
		_, err := svc.Recalculate(ctx, "acme")
		recalculated <- err
	}()
	<-gate.saved
	close(gate.release)

	require.NoError(t, <-refreshed)
	require.NoError(t, <-recalculated)

	_, ok, err := f.cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "stale snapshot left in cache")
}
