// Package leaderboard fetches team standings and turns them into a view
// model plus the navigation that follows a finished stage.
package leaderboard

import (
	"context"
	"fmt"
	"math"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

const (
	Stages         = 5
	PointsPerStage = 20
	MaxScore       = Stages * PointsPerStage

	Placeholder = "No teams found. Be the first to register!"
)

type Tier string

const (
	Gold     Tier = "gold"
	Silver   Tier = "silver"
	Bronze   Tier = "bronze"
	Standard Tier = "standard"
)

// Row is one rendered leaderboard line.
type Row struct {
	Rank          int
	RankText      string
	TeamName      string
	Tier          Tier
	TopThree      bool
	StagesCleared int
	Segments      [Stages]bool
	Progress      string
	Score         string
}

// RouteInfo is where the contestant goes back to or continues with.
type RouteInfo struct {
	Back     string
	Continue string
	Label    string
}

// ContinueText is the label of the continue control.
func (r RouteInfo) ContinueText() string {
	return "CONTINUE TO " + r.Label
}

type View struct {
	Rows        []Row
	Placeholder string
	Route       RouteInfo
	TotalTeams  int
}

var routes = map[int]RouteInfo{
	1: {Back: "stageone", Continue: "stagetwo", Label: "STAGE 2"},
	2: {Back: "website", Continue: "stagethree", Label: "STAGE 3"},
	3: {Back: "stagethree_hub", Continue: "stagefour", Label: "STAGE 4"},
	4: {Back: "stagefour_logic_hub", Continue: "stagefive", Label: "STAGE 5"},
	5: {Back: "stagefive", Continue: "stagefive_presentation", Label: "PRESENTATION"},
}

// Route maps the stage just completed to its navigation. Values outside
// 1..5 are treated as 1.
func Route(from int) RouteInfo {
	if r, ok := routes[from]; ok {
		return r
	}
	return routes[1]
}

// StagesCleared estimates finished stages from a score.
func StagesCleared(score float64) int {
	if score <= 0 {
		return 0
	}
	n := int(math.Ceil(score / PointsPerStage))
	if n > Stages {
		return Stages
	}
	return n
}

func FormatScore(score float64) string {
	if score < 0 {
		score = 0
	}
	return fmt.Sprintf("%.1f points", math.Min(MaxScore, score))
}

func tierFor(rank int) Tier {
	switch rank {
	case 1:
		return Gold
	case 2:
		return Silver
	case 3:
		return Bronze
	default:
		return Standard
	}
}

// BuildView ranks entries in the order given.
func BuildView(entries []domain.LeaderboardEntry, from int) View {
	v := View{Route: Route(from), TotalTeams: len(entries)}
	if len(entries) == 0 {
		v.Placeholder = Placeholder
		return v
	}
	v.Rows = make([]Row, 0, len(entries))
	for i, e := range entries {
		rank := i + 1
		cleared := StagesCleared(e.TeamScore)
		row := Row{
			Rank:          rank,
			RankText:      fmt.Sprintf("%02d", rank),
			TeamName:      e.TeamName,
			Tier:          tierFor(rank),
			TopThree:      rank <= 3,
			StagesCleared: cleared,
			Progress:      fmt.Sprintf("%d/%d", cleared, Stages),
			Score:         FormatScore(e.TeamScore),
		}
		for s := 0; s < cleared; s++ {
			row.Segments[s] = true
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// Getter is the backend call Fetch needs.
type Getter interface {
	GetJSON(ctx context.Context, path string, out interface{}) error
}

// Fetch returns the standings. A nil slice and an error are returned together
// so callers can still render the placeholder.
func Fetch(ctx context.Context, api Getter) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := api.GetJSON(ctx, "/leaderboard", &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return entries, nil
}

// Load fetches and builds in one step. A failed fetch yields the placeholder
// view along with the error.
func Load(ctx context.Context, api Getter, from int) (View, error) {
	entries, err := Fetch(ctx, api)
	return BuildView(entries, from), err
}
