// Package secondarytest provides in-memory implementations of the secondary
// ports for service and handler tests.
package secondarytest

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var (
	_ secondary.TeamPort         = (*Teams)(nil)
	_ secondary.ContestPort      = (*Contests)(nil)
	_ secondary.ProblemPort      = (*Problems)(nil)
	_ secondary.SubmissionPort   = (*Submissions)(nil)
	_ secondary.RoundPort        = (*Rounds)(nil)
	_ secondary.LeaderboardPort  = (*Leaderboard)(nil)
	_ secondary.LeaderboardCache = (*Cache)(nil)
	_ secondary.FileStore        = (*Files)(nil)
)

type Teams struct {
	mu    sync.Mutex
	teams map[string]domain.Team
}

func NewTeams() *Teams {
	return &Teams{teams: make(map[string]domain.Team)}
}

func (t *Teams) Create(ctx context.Context, team *domain.Team) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.teams[team.Name]; ok {
		return errs.TeamAlreadyRegistered
	}
	t.teams[team.Name] = *team
	return nil
}

func (t *Teams) Get(ctx context.Context, name string) (*domain.Team, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	team, ok := t.teams[name]
	if !ok {
		return nil, nil
	}
	return &team, nil
}

func (t *Teams) ListNames(ctx context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.teams))
	for name := range t.teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type Contests struct {
	mu       sync.Mutex
	contests map[string]domain.Contest
}

func NewContests() *Contests {
	return &Contests{contests: make(map[string]domain.Contest)}
}

func (c *Contests) Save(ctx context.Context, contest *domain.Contest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contests[contest.ID] = *contest
	return nil
}

func (c *Contests) Get(ctx context.Context, id string) (*domain.Contest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contest, ok := c.contests[id]
	if !ok {
		return nil, nil
	}
	return &contest, nil
}

type Problems struct {
	mu       sync.Mutex
	problems map[int]domain.Problem
}

func NewProblems() *Problems {
	return &Problems{problems: make(map[int]domain.Problem)}
}

func (p *Problems) Save(ctx context.Context, problem *domain.Problem) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.problems[problem.ID] = *problem
	return nil
}

func (p *Problems) Get(ctx context.Context, id int) (*domain.Problem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	problem, ok := p.problems[id]
	if !ok {
		return nil, nil
	}
	return &problem, nil
}

type Submissions struct {
	mu    sync.Mutex
	Saved []domain.CodeSubmission
}

func NewSubmissions() *Submissions {
	return &Submissions{}
}

func (s *Submissions) Save(ctx context.Context, submission *domain.CodeSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saved = append(s.Saved, *submission)
	return nil
}

func (s *Submissions) BestScore(ctx context.Context, teamName string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best float64
	for _, sub := range s.Saved {
		if sub.TeamName == teamName && float64(sub.Score) > best {
			best = float64(sub.Score)
		}
	}
	return best, nil
}

type Rounds struct {
	mu      sync.Mutex
	Records map[domain.Round]map[string]domain.RoundRecord
}

func NewRounds() *Rounds {
	return &Rounds{Records: make(map[domain.Round]map[string]domain.RoundRecord)}
}

func (r *Rounds) Upsert(ctx context.Context, record *domain.RoundRecord) error {
	if !record.Round.Valid() {
		return errs.InvalidRound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Records[record.Round] == nil {
		r.Records[record.Round] = make(map[string]domain.RoundRecord)
	}
	rec := *record
	if prev, ok := r.Records[record.Round][record.TeamName]; ok {
		rec.Score = prev.Score
	}
	r.Records[record.Round][record.TeamName] = rec
	return nil
}

func (r *Rounds) SetScore(ctx context.Context, round domain.Round, teamName string, score float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[round][teamName]
	if !ok {
		return false, nil
	}
	rec.Score = score
	r.Records[round][teamName] = rec
	return true, nil
}

func (r *Rounds) Scores(ctx context.Context, teamName string) (map[domain.Round]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scores := make(map[domain.Round]float64)
	for round, byTeam := range r.Records {
		if rec, ok := byTeam[teamName]; ok {
			scores[round] = rec.Score
		}
	}
	return scores, nil
}

// Leaderboard ranks every team known to Teams, like the SQL join does.
type Leaderboard struct {
	mu     sync.Mutex
	teams  *Teams
	scores map[string]float64
	Lists  int
}

func NewLeaderboard(teams *Teams) *Leaderboard {
	return &Leaderboard{teams: teams, scores: make(map[string]float64)}
}

func (l *Leaderboard) SaveScore(ctx context.Context, teamName string, score float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores[teamName] = score
	return nil
}

func (l *Leaderboard) List(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	names, _ := l.teams.ListNames(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lists++
	entries := make([]domain.LeaderboardEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, domain.LeaderboardEntry{TeamName: name, TeamScore: l.scores[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TeamScore > entries[j].TeamScore
	})
	return entries, nil
}

type Cache struct {
	mu          sync.Mutex
	entries     []domain.LeaderboardEntry
	ok          bool
	Invalidated int
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries, c.ok, nil
}

func (c *Cache) Set(ctx context.Context, entries []domain.LeaderboardEntry, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries, c.ok = entries, true
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries, c.ok = nil, false
	c.Invalidated++
	return nil
}

// StoredFile is what Files recorded for one Put.
type StoredFile struct {
	Key         string
	ContentType string
	Data        []byte
}

type Files struct {
	mu     sync.Mutex
	Stored []StoredFile
	Err    error
}

func NewFiles() *Files {
	return &Files{}
}

func (f *Files) Put(ctx context.Context, obj secondary.Object) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Stored = append(f.Stored, StoredFile{Key: obj.Key, ContentType: obj.ContentType, Data: data})
	return "mem://" + obj.Key, nil
}
