// Package scoring turns raw star ratings into category scores, a final
// weighted score, a decision suggestion, and a cross-judge combined score.
// It is pure computation: the criteria catalog and position profile are
// passed in explicitly and nothing here touches storage or I/O.
package scoring

import (
	"math"

	"github.com/spartech-ventures/sertie-eval/internal/criteria"
)

// Fixed category shares of the final score.
const (
	ResumeShare     = 0.4
	VideoShare      = 0.5
	MotivationShare = 0.1
)

// Decision is the advisory outcome suggested for a final score. Judges may
// override it at submission time.
type Decision string

const (
	DecisionAdvance  Decision = "advance"
	DecisionWaitlist Decision = "waitlist"
	DecisionReject   Decision = "reject"
)

// Suggest classifies a final score. Boundary values belong to the higher
// tier.
func Suggest(final float64) Decision {
	switch {
	case final >= 4.0:
		return DecisionAdvance
	case final >= 3.0:
		return DecisionWaitlist
	default:
		return DecisionReject
	}
}

// WeightedItem is a criterion with its position-adjusted weight.
type WeightedItem struct {
	ID     string
	Weight float64
}

// Rebalance adjusts the base weights of one category's items so that the
// hard-typed group totals share*profile.Hard and the soft-typed group totals
// share*profile.Soft, while items keep their relative weight within their
// group. share is the category's slice of the final score (0.4 resume,
// 0.5 video). A skill type with zero base total is left as-is.
func Rebalance(groups []criteria.Group, profile criteria.Profile, share float64) []WeightedItem {
	var hardBase, softBase float64
	for _, g := range groups {
		for _, it := range g.Items {
			switch it.Skill {
			case criteria.Hard:
				hardBase += it.Weight
			case criteria.Soft:
				softBase += it.Weight
			}
		}
	}

	var out []WeightedItem
	for _, g := range groups {
		for _, it := range g.Items {
			w := it.Weight
			switch {
			case it.Skill == criteria.Hard && hardBase > 0:
				w = it.Weight * share * profile.Hard / hardBase
			case it.Skill == criteria.Soft && softBase > 0:
				w = it.Weight * share * profile.Soft / softBase
			}
			out = append(out, WeightedItem{ID: it.ID, Weight: w})
		}
	}
	return out
}

// categoryAverageX10 is the weighted star average of one category on a 0-50
// scale. The x10 convention is internal: it is divided back out exactly once
// when the stored 0-5 value is produced. A zero total weight (nothing rated,
// or an empty catalog) yields 0 rather than a division error.
func categoryAverageX10(items []WeightedItem, r Ratings) float64 {
	var sum, total float64
	for _, it := range items {
		w := it.Weight
		sum += r[it.ID] * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return sum / total * 10
}

// Input is one judge's complete scoring pass, with the catalog data the
// scores are computed against.
type Input struct {
	Profile criteria.Profile
	Resume  []criteria.Group
	Video   []criteria.Group

	ResumeRatings Ratings
	VideoRatings  Ratings
	Motivation    float64 // raw star value of the single motivation item
}

// Summary holds the derived scores for one evaluation. Category and final
// scores are rounded to one decimal, the precision at which they are
// persisted and displayed; the decision suggestion is computed from the
// rounded final, so what the judge sees is what gets classified.
type Summary struct {
	ResumeScore     float64
	VideoScore      float64
	MotivationScore float64
	FinalScore      float64
	Decision        Decision
}

// Evaluate computes category scores, the final weighted score and the
// suggested decision. Resume contributes 40%, video 50%, motivation 10%.
func Evaluate(in Input) Summary {
	resumeX10 := categoryAverageX10(Rebalance(in.Resume, in.Profile, ResumeShare), in.ResumeRatings)
	videoX10 := categoryAverageX10(Rebalance(in.Video, in.Profile, VideoShare), in.VideoRatings)
	motivation := clampStar(in.Motivation)

	final := (resumeX10*ResumeShare + videoX10*VideoShare + motivation*10*MotivationShare) / 10

	s := Summary{
		ResumeScore:     round1(resumeX10 / 10),
		VideoScore:      round1(videoX10 / 10),
		MotivationScore: round1(motivation),
		FinalScore:      round1(final),
	}
	s.Decision = Suggest(s.FinalScore)
	return s
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
