package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

// ValidStatusAction reports whether action is a decision the status route
// accepts.
func ValidStatusAction(action string) bool {
	switch action {
	case StatusAdvance, StatusWaitlist, StatusReject:
		return true
	}
	return false
}

// ApplyDecision moves an applicant to the given decision status. When the CEO
// has not evaluated the applicant yet, a consensus CEO evaluation is recorded
// whose scores are the plain average of the existing final scores, so the
// decision carries the CEO's combination weight from then on.
func ApplyDecision(ctx context.Context, store Store, applicantID, action string) (Applicant, error) {
	if !ValidStatusAction(action) {
		return Applicant{}, fmt.Errorf("invalid action %q", action)
	}

	a, err := store.UpdateApplicantStatus(ctx, applicantID, action)
	if err != nil {
		return Applicant{}, err
	}

	byRole, err := store.LatestByRole(ctx, applicantID)
	if err != nil {
		return Applicant{}, err
	}
	if _, ok := byRole[scoring.RoleCEO]; ok {
		return a, nil
	}

	evals, err := store.ListByApplicant(ctx, applicantID)
	if err != nil {
		return Applicant{}, err
	}
	var avg float64
	if len(evals) > 0 {
		for _, e := range evals {
			avg += e.FinalScore
		}
		avg /= float64(len(evals))
	}

	now := time.Now()
	_, err = store.SaveEvaluation(ctx, Evaluation{
		JudgeName:       "Consensus Decision",
		JudgeRole:       scoring.RoleCEO,
		EvaluationDate:  now.Unix(),
		ApplicantID:     applicantID,
		ApplicantName:   a.Name,
		ApplicantRole:   a.Role,
		ResumeScore:     avg,
		VideoScore:      avg,
		MotivationScore: avg,
		FinalScore:      avg,
		Decision:        scoring.Decision(action),
		Notes:           fmt.Sprintf("Consensus decision made through combined score interface on %s.", now.Format("2006-01-02")),
	})
	if err != nil {
		return Applicant{}, err
	}
	// SaveEvaluation set the status to the decision again; same value, no-op.
	return a, nil
}
