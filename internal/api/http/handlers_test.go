package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartech-ventures/sertie-eval/internal/audit"
	"github.com/spartech-ventures/sertie-eval/internal/config"
	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

type fakeRecorder struct {
	types []string
	keys  []string
}

func (f *fakeRecorder) Append(_ context.Context, typ, key string, _ interface{}) error {
	f.types = append(f.types, typ)
	f.keys = append(f.keys, key)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		JudgeCEOName:     "Irene Veng",
		JudgeIntern1Name: "Wei Wu",
		JudgeIntern2Name: "Yanwen Wang",
	}
}

func testRouter(store evaluation.Store, rec Recorder) http.Handler {
	cfg := testConfig()
	validate := NewValidator()
	r := chi.NewRouter()
	r.Get("/api/criteria", GetCriteriaHandler(cfg))
	r.Post("/api/evaluations", SaveEvaluationHandler(store, validate, rec, nil, cfg))
	r.Get("/api/evaluations", ListEvaluationsHandler(store))
	r.Get("/api/evaluations/export", ExportEvaluationsHandler(store))
	r.Get("/api/evaluations/{evaluationID}", GetEvaluationHandler(store))
	r.Get("/api/applicants", ListApplicantsHandler(store))
	r.Get("/api/applicants/{applicantID}/combined", CombinedScoreHandler(store, nil))
	r.Post("/api/applicants/{applicantID}/status", UpdateApplicantStatusHandler(store, rec))
	r.Get("/api/stats", StatsHandler(store))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func oracleSavePayload() map[string]interface{} {
	return map[string]interface{}{
		"judge_role":     "ceo",
		"applicant_id":   "A-001",
		"applicant_name": "Ada Lovelace",
		"applicant_role": "financial-analyst",
		"resume_ratings": map[string]interface{}{
			"resume_technical":    map[string]interface{}{"score": 5, "label": "Excellent"},
			"resume_experience":   5,
			"resume_leadership":   "3",
			"resume_presentation": 3,
		},
		"video_ratings": map[string]interface{}{
			"content_understanding":   4,
			"content_marketing":       4,
			"presentation_creativity": 4,
			"presentation_clarity":    4,
			"presentation_structure":  4,
		},
		"motivation_score": 4,
	}
}

func TestSaveEvaluationComputesScores(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	rec := &fakeRecorder{}
	h := testRouter(store, rec)

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", oracleSavePayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, 4.4, body["resume_score"])
	assert.Equal(t, 4.0, body["video_score"])
	assert.Equal(t, 4.0, body["motivation_score"])
	assert.Equal(t, 4.2, body["final_score"])
	assert.Equal(t, "advance", body["decision"])
	// Judge name falls back to the configured panel name.
	assert.Equal(t, "Irene Veng", body["judge_name"])
	assert.NotEmpty(t, body["id"])

	require.Len(t, rec.types, 1)
	assert.Equal(t, "EvaluationSaved", rec.types[0])
}

func TestSaveEvaluationPersistsApplicantContact(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	payload := oracleSavePayload()
	payload["applicant_email"] = "ada@cam.ac.uk"
	payload["applicant_university"] = "Cambridge"

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	a, err := store.GetApplicant(context.Background(), "A-001")
	require.NoError(t, err)
	assert.Equal(t, "ada@cam.ac.uk", a.Email)
	assert.Equal(t, "Cambridge", a.University)

	// The export's University/Email columns read these back.
	w = doJSON(t, h, http.MethodGet, "/api/evaluations/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cambridge")
	assert.Contains(t, w.Body.String(), "ada@cam.ac.uk")
}

func TestSaveEvaluationClientScoresIgnored(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	payload := oracleSavePayload()
	payload["final_score"] = 5.0
	payload["resume_score"] = 5.0

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 4.2, body["final_score"])
}

func TestSaveEvaluationDecisionOverride(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	payload := oracleSavePayload()
	payload["decision"] = "waitlist"

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 4.2, body["final_score"])
	assert.Equal(t, "waitlist", body["decision"])
}

func TestSaveEvaluationValidation(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	payload := oracleSavePayload()
	delete(payload, "applicant_id")
	payload["judge_role"] = "guest"

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "validation failed", body["error"])
	fields := body["fields"].(map[string]interface{})
	assert.Equal(t, "required", fields["applicant_id"])
	assert.Equal(t, "oneof", fields["judge_role"])
}

func TestSaveEvaluationRequiresAtLeastOneScore(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", map[string]interface{}{
		"judge_role":     "intern1",
		"applicant_id":   "A-001",
		"applicant_name": "Ada Lovelace",
		"applicant_role": "financial-analyst",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveEvaluationBadDate(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	h := testRouter(store, nil)

	payload := oracleSavePayload()
	payload["evaluation_date"] = "30/08/2026"

	w := doJSON(t, h, http.MethodPost, "/api/evaluations", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func seed(t *testing.T, store evaluation.Store, role scoring.Role, final float64, createdAt int64) evaluation.Evaluation {
	t.Helper()
	e, err := store.SaveEvaluation(context.Background(), evaluation.Evaluation{
		JudgeName:     "Judge " + string(role),
		JudgeRole:     role,
		ApplicantID:   "A-001",
		ApplicantName: "Ada Lovelace",
		ApplicantRole: "financial-analyst",
		FinalScore:    final,
		Decision:      scoring.Suggest(final),
		CreatedAt:     createdAt,
	})
	require.NoError(t, err)
	return e
}

func TestCombinedScoreNoEvaluations(t *testing.T) {
	h := testRouter(evaluation.NewInMemoryStore(), nil)

	w := doJSON(t, h, http.MethodGet, "/api/applicants/A-001/combined", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no evaluations for applicant A-001")
}

func TestCombinedScorePartialPanel(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleIntern1, 4.0, 100)
	seed(t, store, scoring.RoleIntern2, 2.0, 200)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/applicants/A-001/combined", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 3.0, body["combined_score"])
	assert.Equal(t, 0.5, body["coverage"])
	assert.Equal(t, "Ada Lovelace", body["applicant_name"])
	judges := body["judges"].([]interface{})
	require.Len(t, judges, 2)
	first := judges[0].(map[string]interface{})
	assert.Equal(t, "intern1", first["judge_role"])
	assert.Equal(t, 0.25, first["weight"])
}

func TestCombinedScoreUsesLatestPerJudge(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleCEO, 1.0, 100)
	seed(t, store, scoring.RoleCEO, 4.0, 200) // resubmission supersedes
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/applicants/A-001/combined", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 4.0, body["combined_score"])
}

func TestUpdateApplicantStatus(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleIntern1, 4.0, 100)
	rec := &fakeRecorder{}
	h := testRouter(store, rec)

	w := doJSON(t, h, http.MethodPost, "/api/applicants/A-001/status",
		map[string]string{"action": "advance"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "advance", body["status"])
	require.Len(t, rec.types, 1)
	assert.Equal(t, "ApplicantStatusChanged", rec.types[0])

	// Consensus evaluation now carries the CEO slot.
	byRole, err := store.LatestByRole(context.Background(), "A-001")
	require.NoError(t, err)
	assert.Contains(t, byRole, scoring.RoleCEO)
}

func TestUpdateApplicantStatusRejectsBadAction(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleIntern1, 4.0, 100)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodPost, "/api/applicants/A-001/status",
		map[string]string{"action": "hire"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/applicants/ghost/status",
		map[string]string{"action": "advance"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEvaluation(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	e := seed(t, store, scoring.RoleCEO, 4.2, 100)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/evaluations/"+e.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "evaluation")
	assert.Contains(t, body, "applicant")

	w = doJSON(t, h, http.MethodGet, "/api/evaluations/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEvaluationsFilter(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleCEO, 4.2, 100)
	seed(t, store, scoring.RoleIntern1, 2.0, 200)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/evaluations?judge_role=ceo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ceo", list[0]["judge_role"])

	// Empty result encodes as [], not null.
	w = doJSON(t, h, http.MethodGet, "/api/evaluations?judge_role=intern2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestExportCSV(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleCEO, 4.2, 100)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/evaluations/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sertie_evaluations_")

	raw := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(string(raw[3:])), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Judge Name,Judge Role"))
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[1], "Financial Analyst")
	assert.Contains(t, lines[1], "Hard 70% / Soft 30%")
	assert.Contains(t, lines[1], "4.2")
}

func TestGetCriteria(t *testing.T) {
	h := testRouter(evaluation.NewInMemoryStore(), nil)

	w := doJSON(t, h, http.MethodGet, "/api/criteria?position=financial-analyst", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Financial Analyst", body["display_name"])

	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, 0.7, profile["hard"])

	judges := body["judges"].([]interface{})
	require.Len(t, judges, 3)
	ceo := judges[0].(map[string]interface{})
	assert.Equal(t, "ceo", ceo["role"])
	assert.Equal(t, "Irene Veng", ceo["name"])
	assert.Equal(t, 0.5, ceo["weight"])
}

type fakeTrail struct {
	events []audit.Event
	err    error
}

func (f *fakeTrail) Recent(_ context.Context, limit int) ([]audit.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.events) {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func TestRecentEvents(t *testing.T) {
	trail := &fakeTrail{events: []audit.Event{
		{Seq: 2, Type: audit.TypeApplicantStatusChanged, Key: "A-001", DataJSON: `{"action":"advance"}`},
		{Seq: 1, Type: audit.TypeEvaluationSaved, Key: "eval-1", DataJSON: `{}`},
	}}
	h := RecentEventsHandler(trail)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var events []audit.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, audit.TypeApplicantStatusChanged, events[0].Type)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	events = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 1)
}

func TestRecentEventsEmpty(t *testing.T) {
	h := RecentEventsHandler(&fakeTrail{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestStats(t *testing.T) {
	store := evaluation.NewInMemoryStore()
	seed(t, store, scoring.RoleCEO, 4.0, 100)
	seed(t, store, scoring.RoleIntern1, 2.0, 200)
	h := testRouter(store, nil)

	w := doJSON(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 1.0, body["applicants"])
	assert.Equal(t, 2.0, body["evaluations"])
	assert.Equal(t, 3.0, body["average_score"])
	assert.Equal(t, 50.0, body["acceptance_rate"])
}
