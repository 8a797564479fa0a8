package evaluation

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

// memoryStore mirrors SQLStore semantics for tests and dev runs without a
// database.
type memoryStore struct {
	mu          sync.RWMutex
	evaluations map[string]Evaluation
	applicants  map[string]Applicant
}

func NewInMemoryStore() Store {
	return &memoryStore{
		evaluations: map[string]Evaluation{},
		applicants:  map[string]Applicant{},
	}
}

func (m *memoryStore) SaveEvaluation(_ context.Context, e Evaluation) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	if e.EvaluationDate == 0 {
		e.EvaluationDate = now
	}
	e.ResumeRatings = ratingsOrEmpty(e.ResumeRatings)
	e.VideoRatings = ratingsOrEmpty(e.VideoRatings)

	a, ok := m.applicants[e.ApplicantID]
	if !ok {
		a = Applicant{
			ApplicantID: e.ApplicantID,
			Name:        e.ApplicantName,
			Role:        e.ApplicantRole,
			CreatedAt:   now,
		}
	}
	if e.ApplicantEmail != "" {
		a.Email = e.ApplicantEmail
	}
	if e.ApplicantUniversity != "" {
		a.University = e.ApplicantUniversity
	}
	a.Status = string(e.Decision)
	m.applicants[e.ApplicantID] = a

	m.evaluations[e.ID] = e
	return e, nil
}

func (m *memoryStore) GetEvaluation(_ context.Context, id string) (Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.evaluations[id]
	if !ok {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return e, nil
}

func (m *memoryStore) ListEvaluations(_ context.Context, opts ListOpts) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Evaluation
	q := strings.ToLower(opts.Q)
	for _, e := range m.evaluations {
		if opts.JudgeRole != "" && string(e.JudgeRole) != opts.JudgeRole {
			continue
		}
		if opts.Decision != "" && string(e.Decision) != opts.Decision {
			continue
		}
		if opts.ApplicantRole != "" && e.ApplicantRole != opts.ApplicantRole {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.ApplicantName), q) &&
			!strings.Contains(strings.ToLower(e.ApplicantID), q) &&
			!strings.Contains(strings.ToLower(e.JudgeName), q) {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out)

	if opts.Limit > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
		if len(out) > opts.Limit {
			out = out[:opts.Limit]
		}
	}
	return out, nil
}

func (m *memoryStore) ListByApplicant(_ context.Context, applicantID string) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Evaluation
	for _, e := range m.evaluations {
		if e.ApplicantID == applicantID {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memoryStore) LatestByRole(ctx context.Context, applicantID string) (map[scoring.Role]Evaluation, error) {
	evals, err := m.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return latestByRole(evals), nil
}

func (m *memoryStore) GetApplicant(_ context.Context, applicantID string) (Applicant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.applicants[applicantID]
	if !ok {
		return Applicant{}, ErrApplicantNotFound
	}
	return a, nil
}

func (m *memoryStore) ListApplicants(_ context.Context) ([]Applicant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Applicant, 0, len(m.applicants))
	for _, a := range m.applicants {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ApplicantID < out[j].ApplicantID
	})
	return out, nil
}

func (m *memoryStore) UpdateApplicantStatus(_ context.Context, applicantID, status string) (Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applicants[applicantID]
	if !ok {
		return Applicant{}, ErrApplicantNotFound
	}
	a.Status = status
	m.applicants[applicantID] = a
	return a, nil
}

func (m *memoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var st Stats
	seen := map[string]struct{}{}
	var sum float64
	var decided, advances int
	for _, e := range m.evaluations {
		seen[e.ApplicantID] = struct{}{}
		sum += e.FinalScore
		switch e.Decision {
		case scoring.DecisionAdvance:
			decided++
			advances++
		case scoring.DecisionWaitlist, scoring.DecisionReject:
			decided++
		}
	}
	st.Applicants = len(seen)
	st.Evaluations = len(m.evaluations)
	if st.Evaluations > 0 {
		st.AverageScore = math.Round(sum/float64(st.Evaluations)*10) / 10
	}
	if decided > 0 {
		st.AcceptanceRate = int(math.Round(float64(advances) / float64(decided) * 100))
	}
	return st, nil
}

func sortNewestFirst(evals []Evaluation) {
	sort.Slice(evals, func(i, j int) bool {
		if evals[i].CreatedAt != evals[j].CreatedAt {
			return evals[i].CreatedAt > evals[j].CreatedAt
		}
		return evals[i].ID > evals[j].ID
	})
}
