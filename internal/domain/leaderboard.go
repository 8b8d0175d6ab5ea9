package domain

// LeaderboardEntry is one ranked row; order in the list defines rank.
type LeaderboardEntry struct {
	TeamName  string  `json:"Team_Name" db:"team_name"`
	TeamScore float64 `json:"team_score" db:"team_score"`
}

type LeaderboardTable struct {
	TeamName  string
	TeamScore string
	UpdatedAt string
}

func GetLeaderboardTable() LeaderboardTable {
	return LeaderboardTable{
		TeamName:  "team_name",
		TeamScore: "team_score",
		UpdatedAt: "updated_at",
	}
}

func (LeaderboardTable) TableName() string {
	return "leaderboard"
}

// TeamScores are the per-stage scores that make up a leaderboard total.
type TeamScores struct {
	Stage1 float64
	Rounds map[Round]float64
}

func (s TeamScores) Total() float64 {
	total := s.Stage1
	for _, v := range s.Rounds {
		total += v
	}
	return total
}
