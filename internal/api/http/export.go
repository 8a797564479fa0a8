package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spartech-ventures/sertie-eval/internal/criteria"
	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
)

var exportHeader = []string{
	"ID", "Judge Name", "Judge Role", "Evaluation Date",
	"Applicant Name", "Applicant ID", "Position", "University", "Email",
	"Resume Score", "Video Score", "Motivation Score", "Final Score",
	"Decision", "Position Weight (Hard/Soft Skills)", "Notes",
}

// GET /api/evaluations/export
// Streams all evaluations as CSV, newest first. The UTF-8 BOM keeps Excel
// from mangling non-ASCII applicant names.
func ExportEvaluationsHandler(store evaluation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evals, err := store.ListEvaluations(r.Context(), evaluation.ListOpts{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed: "+err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="sertie_evaluations_%s.csv"`, time.Now().Format("20060102_150405")))
		_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		cw := csv.NewWriter(w)
		_ = cw.Write(exportHeader)
		for _, e := range evals {
			applicant, _ := store.GetApplicant(r.Context(), e.ApplicantID)

			profile := criteria.ProfileFor(criteria.Position(e.ApplicantRole))
			weights := fmt.Sprintf("Hard %d%% / Soft %d%%",
				int(profile.Hard*100), int(profile.Soft*100))

			notes := strings.NewReplacer("\n", " ", "\r", " ").Replace(e.Notes)

			_ = cw.Write([]string{
				e.ID,
				e.JudgeName,
				string(e.JudgeRole),
				time.Unix(e.EvaluationDate, 0).UTC().Format("2006-01-02"),
				e.ApplicantName,
				e.ApplicantID,
				criteria.DisplayName(criteria.Position(e.ApplicantRole)),
				applicant.University,
				applicant.Email,
				fmt.Sprintf("%.1f", e.ResumeScore),
				fmt.Sprintf("%.1f", e.VideoScore),
				fmt.Sprintf("%.1f", e.MotivationScore),
				fmt.Sprintf("%.1f", e.FinalScore),
				string(e.Decision),
				weights,
				notes,
			})
		}
		cw.Flush()
	}
}
