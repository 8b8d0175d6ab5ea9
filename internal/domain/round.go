package domain

import (
	"fmt"
	"time"
)

// Round identifies one of the file/link stages that follow the coding stage.
type Round int

const (
	Round2 Round = iota + 2
	Round3
	Round4
	Round5
)

func (r Round) Valid() bool {
	return r >= Round2 && r <= Round5
}

// Endpoint is the path the round is submitted to, also used as its table name.
func (r Round) Endpoint() string {
	return fmt.Sprintf("/round_%d", int(r))
}

func (r Round) TableName() string {
	return fmt.Sprintf("round_%d", int(r))
}

func (r Round) ScoreColumn() string {
	return fmt.Sprintf("score_%d", int(r))
}

const Round4StatusSubmitted = "Submitted"

// LogicNode is one condition/action pair of the logic stage.
type LogicNode struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

type Round2Submission struct {
	TeamName   string   `json:"Team_Name"`
	GitHubLink string   `json:"git_hub_link"`
	HostedLink string   `json:"hosted_link"`
	FileURLs   []string `json:"file_urls"`
	Score      float64  `json:"score_2"`
}

type Round3Submission struct {
	TeamName    string   `json:"Team_Name"`
	FigmaLinks  string   `json:"figma_links"`
	Description string   `json:"description"`
	FileURLs    []string `json:"file_urls"`
	Score       float64  `json:"score_3"`
}

type Round4Submission struct {
	TeamName             string  `json:"Team_Name"`
	StructuredSubmission string  `json:"structured_submission"`
	Status               string  `json:"status_4"`
	Question             string  `json:"question"`
	Score                float64 `json:"score_4"`
}

type Round5Submission struct {
	TeamName string   `json:"Team_Name"`
	Abstract string   `json:"abstract"`
	FileURLs []string `json:"file_urls"`
	Score    float64  `json:"score_5"`
}

// RoundRecord is the storage shape shared by every round table. Fields a
// round does not use stay empty. Score starts at 0 and only grading moves it.
type RoundRecord struct {
	Round       Round             `db:"-"`
	TeamName    string            `db:"team_name"`
	Fields      map[string]string `db:"-"`
	FileURLs    []string          `db:"-"`
	Score       float64           `db:"score"`
	SubmittedAt time.Time         `db:"submitted_at"`
}

// UploadResponse is returned by every round endpoint on success.
type UploadResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
}

// HasFiles reports whether the round accepts file uploads.
func (r Round) HasFiles() bool {
	return r != Round4
}
