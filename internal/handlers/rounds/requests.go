package rounds

// GradeRequest sets the judged score of one round submission.
type GradeRequest struct {
	TeamName string  `json:"Team_Name"`
	Round    int     `json:"round"`
	Score    float64 `json:"score"`
}

type GradeResponse struct {
	TeamName  string  `json:"Team_Name"`
	TeamScore float64 `json:"team_score"`
}
