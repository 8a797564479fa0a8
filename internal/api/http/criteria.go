package http

import (
	"net/http"
	"strings"

	"github.com/spartech-ventures/sertie-eval/internal/config"
	"github.com/spartech-ventures/sertie-eval/internal/criteria"
	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

type judgeInfo struct {
	Role   scoring.Role `json:"role"`
	Name   string       `json:"name"`
	Weight float64      `json:"weight"`
}

type criteriaResponse struct {
	Position    criteria.Position `json:"position"`
	DisplayName string            `json:"display_name"`
	Profile     criteria.Profile  `json:"profile"`
	Resume      []criteria.Group  `json:"resume"`
	Video       []criteria.Group  `json:"video"`
	Motivation  criteria.Item     `json:"motivation"`
	Judges      []judgeInfo       `json:"judges"`
}

// GET /api/criteria?position=financial-analyst
// Serves the weighted scoring form for a position; unknown or empty positions
// get the neutral catalog with a balanced profile.
func GetCriteriaHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos := criteria.Position(strings.TrimSpace(r.URL.Query().Get("position")))

		judges := make([]judgeInfo, 0, len(scoring.PanelRoles))
		for _, role := range scoring.PanelRoles {
			judges = append(judges, judgeInfo{
				Role:   role,
				Name:   cfg.JudgeName(string(role)),
				Weight: role.Weight(),
			})
		}

		writeJSON(w, http.StatusOK, criteriaResponse{
			Position:    pos,
			DisplayName: criteria.DisplayName(pos),
			Profile:     criteria.ProfileFor(pos),
			Resume:      criteria.Resume(pos),
			Video:       criteria.Video(pos),
			Motivation:  criteria.Motivation(),
			Judges:      judges,
		})
	}
}
