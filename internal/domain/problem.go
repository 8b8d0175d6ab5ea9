package domain

// Problem is a stage one coding task. PreCode holds the starter template
// per language and PostCode the driver appended to the contestant's code.
type Problem struct {
	ID          int               `json:"problem_id"`
	ContestID   string            `json:"contest_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TestCases   []TestCase        `json:"test_cases"`
	Score       int               `json:"score"`
	PreCode     map[string]string `json:"pre_code"`
	PostCode    map[string]string `json:"post_code"`
}

// VisibleTestCases returns the cases contestants are allowed to see.
func (p *Problem) VisibleTestCases() []TestCase {
	visible := make([]TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return visible
}

type ProblemTable struct {
	ID          string
	ContestID   string
	Title       string
	Description string
	TestCases   string
	Score       string
	PreCode     string
	PostCode    string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:          "problem_id",
		ContestID:   "contest_id",
		Title:       "title",
		Description: "description",
		TestCases:   "test_cases",
		Score:       "score",
		PreCode:     "pre_code",
		PostCode:    "post_code",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}
