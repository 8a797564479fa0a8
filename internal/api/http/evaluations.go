package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/spartech-ventures/sertie-eval/internal/audit"
	"github.com/spartech-ventures/sertie-eval/internal/config"
	"github.com/spartech-ventures/sertie-eval/internal/criteria"
	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

type saveEvaluationReq struct {
	JudgeName      string `json:"judge_name"`
	JudgeRole      string `json:"judge_role" validate:"required,oneof=ceo intern1 intern2"`
	EvaluationDate string `json:"evaluation_date"` // YYYY-MM-DD, defaults to today

	ApplicantName       string `json:"applicant_name" validate:"required"`
	ApplicantID         string `json:"applicant_id" validate:"required"`
	ApplicantRole       string `json:"applicant_role" validate:"required"`
	ApplicantEmail      string `json:"applicant_email"`
	ApplicantUniversity string `json:"applicant_university"`

	ResumeRatings   map[string]interface{} `json:"resume_ratings"`
	VideoRatings    map[string]interface{} `json:"video_ratings"`
	MotivationScore interface{}            `json:"motivation_score"`

	// Optional override of the suggested decision.
	Decision string `json:"decision" validate:"omitempty,oneof=advance waitlist reject"`
	Notes    string `json:"notes"`
}

// POST /api/evaluations
// Scores are computed server-side from the raw ratings; the client may only
// override the suggested decision.
func SaveEvaluationHandler(store evaluation.Store, validate *validator.Validate, rec Recorder, m Metrics, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveEvaluationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				writeValidationError(w, verrs)
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		motivation := scoring.StarValue(req.MotivationScore)
		if len(req.ResumeRatings) == 0 && len(req.VideoRatings) == 0 && req.MotivationScore == nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": map[string]string{"resume_ratings": "at least one score required"},
			})
			return
		}

		position := criteria.Position(req.ApplicantRole)
		resumeRatings := scoring.ParseRatings(req.ResumeRatings)
		videoRatings := scoring.ParseRatings(req.VideoRatings)

		summary := scoring.Evaluate(scoring.Input{
			Profile:       criteria.ProfileFor(position),
			Resume:        criteria.Resume(position),
			Video:         criteria.Video(position),
			ResumeRatings: resumeRatings,
			VideoRatings:  videoRatings,
			Motivation:    motivation,
		})

		decision := summary.Decision
		if req.Decision != "" {
			decision = scoring.Decision(req.Decision)
		}
		judgeName := strings.TrimSpace(req.JudgeName)
		if judgeName == "" {
			judgeName = cfg.JudgeName(req.JudgeRole)
		}
		var evalDate int64
		if req.EvaluationDate != "" {
			t, err := time.Parse("2006-01-02", req.EvaluationDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "evaluation_date must be YYYY-MM-DD")
				return
			}
			evalDate = t.Unix()
		}

		saved, err := store.SaveEvaluation(r.Context(), evaluation.Evaluation{
			JudgeName:           judgeName,
			JudgeRole:           scoring.Role(req.JudgeRole),
			EvaluationDate:      evalDate,
			ApplicantID:         req.ApplicantID,
			ApplicantName:       req.ApplicantName,
			ApplicantRole:       req.ApplicantRole,
			ApplicantEmail:      req.ApplicantEmail,
			ApplicantUniversity: req.ApplicantUniversity,
			ResumeScore:         summary.ResumeScore,
			VideoScore:          summary.VideoScore,
			MotivationScore:     summary.MotivationScore,
			FinalScore:          summary.FinalScore,
			Decision:            decision,
			Notes:               req.Notes,
			ResumeRatings:       resumeRatings,
			VideoRatings:        videoRatings,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "save failed: "+err.Error())
			return
		}

		if rec != nil {
			_ = rec.Append(r.Context(), audit.TypeEvaluationSaved, saved.ID, saved)
		}
		if m != nil {
			m.EvaluationSaved(string(saved.JudgeRole), string(saved.Decision))
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

// GET /api/evaluations?judge_role=...&decision=...&applicant_role=...&q=...&limit=50&offset=0
func ListEvaluationsHandler(store evaluation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qp := r.URL.Query()
		list, err := store.ListEvaluations(r.Context(), evaluation.ListOpts{
			JudgeRole:     strings.TrimSpace(qp.Get("judge_role")),
			Decision:      strings.TrimSpace(qp.Get("decision")),
			ApplicantRole: strings.TrimSpace(qp.Get("applicant_role")),
			Q:             strings.TrimSpace(qp.Get("q")),
			Limit:         parseIntDefault(qp.Get("limit"), 50),
			Offset:        parseIntDefault(qp.Get("offset"), 0),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if list == nil {
			list = []evaluation.Evaluation{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /api/evaluations/{evaluationID}
// Returns the record with its raw ratings plus the applicant, when known.
func GetEvaluationHandler(store evaluation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "evaluationID"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "evaluationID required")
			return
		}
		e, err := store.GetEvaluation(r.Context(), id)
		if errors.Is(err, evaluation.ErrEvaluationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := map[string]interface{}{"evaluation": e}
		if a, err := store.GetApplicant(r.Context(), e.ApplicantID); err == nil {
			resp["applicant"] = a
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
