package evaluation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spartech-ventures/sertie-eval/internal/scoring"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

const evalColumns = `id,judge_name,judge_role,evaluation_date,applicant_id,applicant_name,applicant_role,
	resume_score,video_score,motivation_score,final_score,decision,notes,
	resume_ratings_json,video_ratings_json,created_at`

func (s *SQLStore) SaveEvaluation(ctx context.Context, e Evaluation) (Evaluation, error) {
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

	rr, err := json.Marshal(ratingsOrEmpty(e.ResumeRatings))
	if err != nil {
		return Evaluation{}, err
	}
	vr, err := json.Marshal(ratingsOrEmpty(e.VideoRatings))
	if err != nil {
		return Evaluation{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Evaluation{}, err
	}
	defer tx.Rollback()

	// Upsert the applicant and move its status to this decision. Contact
	// fields are only overwritten when the submission carries them, so a
	// later evaluation without them cannot blank what an earlier one set.
	_, err = tx.ExecContext(ctx, `INSERT INTO applicants (applicant_id,name,role,email,university,status,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (applicant_id) DO UPDATE SET status=EXCLUDED.status,
			email=CASE WHEN EXCLUDED.email='' THEN email ELSE EXCLUDED.email END,
			university=CASE WHEN EXCLUDED.university='' THEN university ELSE EXCLUDED.university END`,
		e.ApplicantID, e.ApplicantName, e.ApplicantRole, e.ApplicantEmail, e.ApplicantUniversity, string(e.Decision), now)
	if err != nil {
		return Evaluation{}, err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO evaluations (`+evalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		e.ID, e.JudgeName, string(e.JudgeRole), e.EvaluationDate,
		e.ApplicantID, e.ApplicantName, e.ApplicantRole,
		e.ResumeScore, e.VideoScore, e.MotivationScore, e.FinalScore,
		string(e.Decision), e.Notes, string(rr), string(vr), e.CreatedAt)
	if err != nil {
		return Evaluation{}, err
	}

	if err := tx.Commit(); err != nil {
		return Evaluation{}, err
	}
	return e, nil
}

func (s *SQLStore) GetEvaluation(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+evalColumns+` FROM evaluations WHERE id=$1`, id)
	e, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return e, err
}

func (s *SQLStore) ListEvaluations(ctx context.Context, opts ListOpts) ([]Evaluation, error) {
	var where []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if opts.JudgeRole != "" {
		add("judge_role=$%d", opts.JudgeRole)
	}
	if opts.Decision != "" {
		add("decision=$%d", opts.Decision)
	}
	if opts.ApplicantRole != "" {
		add("applicant_role=$%d", opts.ApplicantRole)
	}
	if opts.Q != "" {
		like := "%" + strings.ToLower(opts.Q) + "%"
		args = append(args, like)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(LOWER(applicant_name) LIKE $%d OR LOWER(applicant_id) LIKE $%d OR LOWER(judge_name) LIKE $%d)", n, n, n))
	}

	q := `SELECT ` + evalColumns + ` FROM evaluations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, opts.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvaluations(rows)
}

func (s *SQLStore) ListByApplicant(ctx context.Context, applicantID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+evalColumns+` FROM evaluations WHERE applicant_id=$1 ORDER BY created_at DESC, id DESC`,
		applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvaluations(rows)
}

func (s *SQLStore) LatestByRole(ctx context.Context, applicantID string) (map[scoring.Role]Evaluation, error) {
	evals, err := s.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return latestByRole(evals), nil
}

func (s *SQLStore) GetApplicant(ctx context.Context, applicantID string) (Applicant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT applicant_id,name,role,email,university,phone,resume_url,video_url,status,created_at
		FROM applicants WHERE applicant_id=$1`, applicantID)
	var a Applicant
	err := row.Scan(&a.ApplicantID, &a.Name, &a.Role, &a.Email, &a.University, &a.Phone,
		&a.ResumeURL, &a.VideoURL, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Applicant{}, ErrApplicantNotFound
	}
	return a, err
}

func (s *SQLStore) ListApplicants(ctx context.Context) ([]Applicant, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT applicant_id,name,role,email,university,phone,resume_url,video_url,status,created_at
		FROM applicants ORDER BY created_at DESC, applicant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Applicant
	for rows.Next() {
		var a Applicant
		if err := rows.Scan(&a.ApplicantID, &a.Name, &a.Role, &a.Email, &a.University, &a.Phone,
			&a.ResumeURL, &a.VideoURL, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateApplicantStatus(ctx context.Context, applicantID, status string) (Applicant, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE applicants SET status=$1 WHERE applicant_id=$2`, status, applicantID)
	if err != nil {
		return Applicant{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Applicant{}, ErrApplicantNotFound
	}
	return s.GetApplicant(ctx, applicantID)
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT applicant_id), COUNT(*), AVG(final_score) FROM evaluations`).
		Scan(&st.Applicants, &st.Evaluations, &avg)
	if err != nil {
		return Stats{}, err
	}
	if avg.Valid {
		st.AverageScore = math.Round(avg.Float64*10) / 10
	}

	var decided, advances int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COUNT(CASE WHEN decision='advance' THEN 1 END)
		FROM evaluations WHERE decision IN ('advance','waitlist','reject')`).
		Scan(&decided, &advances)
	if err != nil {
		return Stats{}, err
	}
	if decided > 0 {
		st.AcceptanceRate = int(math.Round(float64(advances) / float64(decided) * 100))
	}
	return st, nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var e Evaluation
	var role, decision, rr, vr string
	err := row.Scan(&e.ID, &e.JudgeName, &role, &e.EvaluationDate,
		&e.ApplicantID, &e.ApplicantName, &e.ApplicantRole,
		&e.ResumeScore, &e.VideoScore, &e.MotivationScore, &e.FinalScore,
		&decision, &e.Notes, &rr, &vr, &e.CreatedAt)
	if err != nil {
		return Evaluation{}, err
	}
	e.JudgeRole = scoring.Role(role)
	e.Decision = scoring.Decision(decision)
	if err := json.Unmarshal([]byte(rr), &e.ResumeRatings); err != nil {
		e.ResumeRatings = scoring.Ratings{}
	}
	if err := json.Unmarshal([]byte(vr), &e.VideoRatings); err != nil {
		e.VideoRatings = scoring.Ratings{}
	}
	return e, nil
}

func collectEvaluations(rows *sql.Rows) ([]Evaluation, error) {
	var out []Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// latestByRole keeps the first row seen per role; callers pass rows already
// ordered newest-first, so most-recent wins when a judge re-submits.
func latestByRole(evals []Evaluation) map[scoring.Role]Evaluation {
	out := make(map[scoring.Role]Evaluation, len(scoring.PanelRoles))
	for _, e := range evals {
		role := scoring.Role(strings.ToLower(string(e.JudgeRole)))
		if !role.Valid() {
			continue
		}
		if _, ok := out[role]; !ok {
			out[role] = e
		}
	}
	return out
}

func ratingsOrEmpty(r scoring.Ratings) scoring.Ratings {
	if r == nil {
		return scoring.Ratings{}
	}
	return r
}
