package domain

import "time"

type Contest struct {
	ID          string    `json:"contest_id" db:"contest_id"`
	Description string    `json:"description" db:"description"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
}

type ContestTable struct {
	ID          string
	Description string
	StartTime   string
	EndTime     string
}

func GetContestTable() ContestTable {
	return ContestTable{
		ID:          "contest_id",
		Description: "description",
		StartTime:   "start_time",
		EndTime:     "end_time",
	}
}

func (ContestTable) TableName() string {
	return "contests"
}
