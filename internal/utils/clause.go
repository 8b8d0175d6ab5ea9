package querybuilder

// CondType joins a condition to the one before it.
type CondType int

const (
	CondTypeAnd CondType = iota + 1
	CondTypeOr
)

func (c CondType) String() string {
	switch c {
	case CondTypeAnd:
		return "AND"
	case CondTypeOr:
		return "OR"
	}
	return ""
}

// Condition is one WHERE clause, or a parenthesised group of them.
type Condition struct {
	condType   CondType
	clause     string
	args       []interface{}
	subCond    []Condition
	isSubGroup bool
}

// JoinType is the join flavour. The leaderboard uses a left join so teams
// without a score row still rank.
type JoinType int

const (
	JoinTypeInner JoinType = iota + 1
	JoinTypeLeft
)

func (j JoinType) String() string {
	switch j {
	case JoinTypeInner:
		return "INNER JOIN"
	case JoinTypeLeft:
		return "LEFT JOIN"
	}
	return ""
}

type join struct {
	joinType JoinType
	table    string
	alias    string
	on       string
}
