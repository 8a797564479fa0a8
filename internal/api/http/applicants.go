package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/spartech-ventures/sertie-eval/internal/audit"
	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

// GET /api/applicants
func ListApplicantsHandler(store evaluation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListApplicants(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if list == nil {
			list = []evaluation.Applicant{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type combinedJudge struct {
	Role       scoring.Role     `json:"judge_role"`
	JudgeName  string           `json:"judge_name,omitempty"`
	FinalScore float64          `json:"final_score"`
	Weight     float64          `json:"weight"`
	Decision   scoring.Decision `json:"decision"`
}

type combinedResponse struct {
	ApplicantID   string          `json:"applicant_id"`
	ApplicantName string          `json:"applicant_name"`
	ApplicantRole string          `json:"applicant_role"`
	CombinedScore float64         `json:"combined_score"` // two decimals
	Coverage      float64         `json:"coverage"`
	Judges        []combinedJudge `json:"judges"`
}

// GET /api/applicants/{applicantID}/combined
// Recomputed on every query from whatever evaluations currently exist; a
// missing panel member just lowers coverage. No evaluations at all is a 404
// so callers can tell "no data" apart from a genuine zero score.
func CombinedScoreHandler(store evaluation.Store, m Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID := strings.TrimSpace(chi.URLParam(r, "applicantID"))
		if applicantID == "" {
			writeError(w, http.StatusBadRequest, "applicantID required")
			return
		}

		byRole, err := store.LatestByRole(r.Context(), applicantID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		finals := make(map[scoring.Role]float64, len(byRole))
		for role, e := range byRole {
			finals[role] = e.FinalScore
		}
		combined, err := scoring.Combine(finals)
		if errors.Is(err, scoring.ErrNoEvaluations) {
			writeError(w, http.StatusNotFound, "no evaluations for applicant "+applicantID)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if m != nil {
			m.CombinedQueried()
		}

		resp := combinedResponse{
			ApplicantID:   applicantID,
			CombinedScore: math.Round(combined.Score*100) / 100,
			Coverage:      combined.Coverage,
		}
		for _, js := range combined.Judges {
			e := byRole[js.Role]
			resp.ApplicantName = e.ApplicantName
			resp.ApplicantRole = e.ApplicantRole
			resp.Judges = append(resp.Judges, combinedJudge{
				Role:       js.Role,
				JudgeName:  e.JudgeName,
				FinalScore: js.FinalScore,
				Weight:     js.Weight,
				Decision:   e.Decision,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type statusReq struct {
	Action string `json:"action"`
}

// POST /api/applicants/{applicantID}/status {"action":"advance"}
// Also records a consensus CEO evaluation when the CEO has not scored the
// applicant, so the decision carries CEO weight in later combinations.
func UpdateApplicantStatusHandler(store evaluation.Store, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID := strings.TrimSpace(chi.URLParam(r, "applicantID"))
		if applicantID == "" {
			writeError(w, http.StatusBadRequest, "applicantID required")
			return
		}
		var req statusReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if !evaluation.ValidStatusAction(req.Action) {
			writeError(w, http.StatusBadRequest, "action must be advance, waitlist or reject")
			return
		}

		a, err := evaluation.ApplyDecision(r.Context(), store, applicantID, req.Action)
		if errors.Is(err, evaluation.ErrApplicantNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if rec != nil {
			_ = rec.Append(r.Context(), audit.TypeApplicantStatusChanged, applicantID,
				map[string]string{"action": req.Action})
		}
		writeJSON(w, http.StatusOK, a)
	}
}
