package evaluation

import "github.com/spartech-ventures/sertie-eval/internal/scoring"

// Evaluation is one judge's complete, immutable scoring pass for one
// applicant. The raw ratings maps are stored for audit and display only;
// scores are never recomputed from them after submission.
type Evaluation struct {
	ID             string       `json:"id"`
	JudgeName      string       `json:"judge_name,omitempty"`
	JudgeRole      scoring.Role `json:"judge_role"`
	EvaluationDate int64        `json:"evaluation_date"`

	ApplicantID   string `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
	ApplicantRole string `json:"applicant_role"`

	// Contact details ride along on submission and land on the applicant
	// row; they are not stored per evaluation.
	ApplicantEmail      string `json:"applicant_email,omitempty"`
	ApplicantUniversity string `json:"applicant_university,omitempty"`

	ResumeScore     float64 `json:"resume_score"`
	VideoScore      float64 `json:"video_score"`
	MotivationScore float64 `json:"motivation_score"`
	FinalScore      float64 `json:"final_score"`

	Decision scoring.Decision `json:"decision"`
	Notes    string           `json:"notes,omitempty"`

	ResumeRatings scoring.Ratings `json:"resume_ratings,omitempty"`
	VideoRatings  scoring.Ratings `json:"video_ratings,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// Applicant statuses. An applicant starts pending, moves to the submitting
// judge's decision on each saved evaluation, and can be overridden through
// the status route.
const (
	StatusPending  = "pending"
	StatusAdvance  = "advance"
	StatusWaitlist = "waitlist"
	StatusReject   = "reject"
)

type Applicant struct {
	ApplicantID string `json:"applicant_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email,omitempty"`
	University  string `json:"university,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ResumeURL   string `json:"resume_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

// Stats feeds the dashboard counters.
type Stats struct {
	Applicants   int     `json:"applicants"`
	Evaluations  int     `json:"evaluations"`
	AverageScore float64 `json:"average_score"`
	// AcceptanceRate is the percentage of decided evaluations that advanced,
	// rounded to the nearest whole percent.
	AcceptanceRate int `json:"acceptance_rate"`
}
