package criteria

import "strings"

// Position is the role an applicant is applying for. Unknown values are
// served by the neutral default branch everywhere.
type Position string

const (
	FinancialAnalyst  Position = "financial-analyst"
	ResearchAnalyst   Position = "research-analyst"
	OperationsAnalyst Position = "operations-analyst"
)

// Profile is the hard/soft skill split applied when rebalancing criterion
// weights for a position. Hard+Soft always sum to 1.
type Profile struct {
	Hard float64 `json:"hard"`
	Soft float64 `json:"soft"`
}

// ProfileFor returns the fixed hard/soft split for a position. Positions
// outside the known set get a balanced 50/50 profile.
func ProfileFor(p Position) Profile {
	switch p {
	case FinancialAnalyst:
		return Profile{Hard: 0.7, Soft: 0.3}
	case ResearchAnalyst:
		return Profile{Hard: 0.4, Soft: 0.6}
	case OperationsAnalyst:
		return Profile{Hard: 0.2, Soft: 0.8}
	default:
		return Profile{Hard: 0.5, Soft: 0.5}
	}
}

// DisplayName renders a position slug as a human-readable title.
func DisplayName(p Position) string {
	switch p {
	case FinancialAnalyst:
		return "Financial Analyst"
	case ResearchAnalyst:
		return "Research Analyst"
	case OperationsAnalyst:
		return "Operations Analyst"
	}
	words := strings.Split(strings.ReplaceAll(string(p), "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
