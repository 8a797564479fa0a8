package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/spartech-ventures/sertie-eval/internal/api/http"
	"github.com/spartech-ventures/sertie-eval/internal/audit"
	"github.com/spartech-ventures/sertie-eval/internal/config"
	"github.com/spartech-ventures/sertie-eval/internal/db"
	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
	"github.com/spartech-ventures/sertie-eval/pkg/metrics"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := evaluation.NewSQLStore(dbh, cfg.DBDriver)
	auditLog := audit.NewLog(dbh)

	var rec api.Recorder = auditLog
	var mm api.Metrics
	var promMgr *metrics.Manager
	if cfg.EnableMetrics {
		promMgr = metrics.New()
		mm = promMgr
	}

	validate := api.NewValidator()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if promMgr != nil {
		r.Use(promMgr.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/criteria", api.GetCriteriaHandler(cfg))

		ar.Post("/evaluations", api.SaveEvaluationHandler(store, validate, rec, mm, cfg))
		ar.Get("/evaluations", api.ListEvaluationsHandler(store))
		ar.Get("/evaluations/export", api.ExportEvaluationsHandler(store))
		ar.Get("/evaluations/{evaluationID}", api.GetEvaluationHandler(store))

		ar.Get("/applicants", api.ListApplicantsHandler(store))
		ar.Get("/applicants/{applicantID}/combined", api.CombinedScoreHandler(store, mm))
		ar.Post("/applicants/{applicantID}/status", api.UpdateApplicantStatusHandler(store, rec))

		ar.Get("/stats", api.StatsHandler(store))
		ar.Get("/audit", api.RecentEventsHandler(auditLog))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})
	if promMgr != nil {
		r.Handle("/metrics", promMgr.Handler())
	}

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
