package domain

import "time"

// TeamMember is one contestant listed on a registration.
type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Team represents a registered contest team
type Team struct {
	Name      string       `json:"Team_Name" db:"team_name"`
	Members   []TeamMember `json:"team_members" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

type TeamTable struct {
	Name      string
	Members   string
	CreatedAt string
}

func GetTeamTable() TeamTable {
	return TeamTable{
		Name:      "team_name",
		Members:   "team_members",
		CreatedAt: "created_at",
	}
}

func (TeamTable) TableName() string {
	return "teams"
}
