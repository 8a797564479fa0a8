package scoring

import "errors"

// Role identifies a member of the fixed judging panel.
type Role string

const (
	RoleCEO     Role = "ceo"
	RoleIntern1 Role = "intern1"
	RoleIntern2 Role = "intern2"
)

// PanelRoles is the canonical ordering used everywhere judges are listed.
var PanelRoles = []Role{RoleCEO, RoleIntern1, RoleIntern2}

// Valid reports whether r is one of the panel roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCEO, RoleIntern1, RoleIntern2:
		return true
	}
	return false
}

// Weight returns the role's share in the combined score. Rows written before
// the role set was closed may carry other values; those weigh like an intern.
func (r Role) Weight() float64 {
	if r == RoleCEO {
		return 0.5
	}
	return 0.25
}

// ErrNoEvaluations distinguishes "no judge has submitted yet" from a genuine
// combined score of zero.
var ErrNoEvaluations = errors.New("no evaluations to combine")

// JudgeScore is one judge's contribution to a combined score.
type JudgeScore struct {
	Role       Role    `json:"judge_role"`
	FinalScore float64 `json:"final_score"`
	Weight     float64 `json:"weight"`
}

// Combined is the cross-judge weighted result for one applicant.
type Combined struct {
	Score float64 `json:"combined_score"`
	// Coverage is the summed weight of judges who have submitted; 1.0 means
	// the full panel.
	Coverage float64      `json:"coverage"`
	Judges   []JudgeScore `json:"judges"`
}

// Combine renormalizes the fixed judge weights over whichever subset of the
// panel has submitted, so a partial panel is still scorable proportionally.
// Returns ErrNoEvaluations when finals is empty.
func Combine(finals map[Role]float64) (Combined, error) {
	var c Combined
	for _, role := range PanelRoles {
		score, ok := finals[role]
		if !ok {
			continue
		}
		w := role.Weight()
		c.Score += score * w
		c.Coverage += w
		c.Judges = append(c.Judges, JudgeScore{Role: role, FinalScore: score, Weight: w})
	}
	if c.Coverage == 0 {
		return Combined{}, ErrNoEvaluations
	}
	c.Score /= c.Coverage
	return c, nil
}
