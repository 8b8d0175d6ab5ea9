package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionPassed = "PASSED"
	SubmissionFailed = "failed"
)

// CodeSubmission is the summary the editor posts after running every test case.
type CodeSubmission struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TeamName    string    `json:"Team_Name" db:"team_name"`
	ContestID   string    `json:"contest_id" db:"contest_id"`
	ProblemID   int       `json:"problem_id" db:"problem_id"`
	Code        string    `json:"code" db:"code"`
	Language    string    `json:"language,omitempty" db:"language"`
	Status      string    `json:"status" db:"status"`
	Passed      int       `json:"passed" db:"passed"`
	Total       int       `json:"total" db:"total"`
	Score       int       `json:"score" db:"score"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// NewCodeSubmission creates a new submission
func NewCodeSubmission(teamName, contestID string, problemID int, code, language, status string) *CodeSubmission {
	return &CodeSubmission{
		ID:          uuid.New(),
		TeamName:    teamName,
		ContestID:   contestID,
		ProblemID:   problemID,
		Code:        code,
		Language:    language,
		Status:      status,
		SubmittedAt: time.Now(),
	}
}

type CodeSubmissionTable struct {
	ID          string
	TeamName    string
	ContestID   string
	ProblemID   string
	Code        string
	Language    string
	Status      string
	Passed      string
	Total       string
	Score       string
	SubmittedAt string
}

func GetCodeSubmissionTable() CodeSubmissionTable {
	return CodeSubmissionTable{
		ID:          "id",
		TeamName:    "team_name",
		ContestID:   "contest_id",
		ProblemID:   "problem_id",
		Code:        "code",
		Language:    "language",
		Status:      "status",
		Passed:      "passed",
		Total:       "total",
		Score:       "score",
		SubmittedAt: "submitted_at",
	}
}

func (CodeSubmissionTable) TableName() string {
	return "submissions"
}
