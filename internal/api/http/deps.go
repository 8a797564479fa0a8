package http

import (
	"context"

	"github.com/spartech-ventures/sertie-eval/internal/audit"
)

// Recorder is the slice of the audit log the handlers need. A nil Recorder
// disables auditing (memory-store runs).
type Recorder interface {
	Append(ctx context.Context, typ, key string, data interface{}) error
}

// Trail is the read side of the audit log.
type Trail interface {
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Metrics is the slice of the metrics manager the handlers need. A nil
// Metrics disables instrumentation.
type Metrics interface {
	EvaluationSaved(judgeRole, decision string)
	CombinedQueried()
}
