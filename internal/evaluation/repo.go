package evaluation

import (
	"context"
	"errors"

	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrApplicantNotFound  = errors.New("applicant not found")
)

// ListOpts filters the evaluations list. Empty fields match everything.
type ListOpts struct {
	JudgeRole     string
	Decision      string
	ApplicantRole string
	Q             string // substring match on applicant name/id or judge name
	Limit         int
	Offset        int
}

type Store interface {
	// SaveEvaluation appends an evaluation, creating the applicant row if
	// missing and setting the applicant's status to the decision.
	SaveEvaluation(ctx context.Context, e Evaluation) (Evaluation, error)
	GetEvaluation(ctx context.Context, id string) (Evaluation, error)
	ListEvaluations(ctx context.Context, opts ListOpts) ([]Evaluation, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Evaluation, error)

	// LatestByRole returns the most recent evaluation per judge role for one
	// applicant. Judges are not prevented from re-submitting; the newest row
	// per role is authoritative for combination.
	LatestByRole(ctx context.Context, applicantID string) (map[scoring.Role]Evaluation, error)

	GetApplicant(ctx context.Context, applicantID string) (Applicant, error)
	ListApplicants(ctx context.Context) ([]Applicant, error)
	UpdateApplicantStatus(ctx context.Context, applicantID, status string) (Applicant, error)

	Stats(ctx context.Context) (Stats, error)
}
