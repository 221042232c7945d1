package refresher

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/api"
)

type Operation string

const (
	OperationStats      Operation = "stats"
	OperationGovernance Operation = "governance"
)

type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeNetwork    Outcome = "network"
	OutcomeStatus     Outcome = "status"
	OutcomeDecode     Outcome = "decode"
	OutcomeView       Outcome = "view"
	OutcomeCanceled   Outcome = "canceled"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeSuperseded Outcome = "superseded"
)

// Result describes one refresh operation. The view was updated only when
// Outcome is OutcomeOK.
type Result struct {
	Operation Operation
	Outcome   Outcome
	Err       error
	Seq       uint64
	RequestID string
	Duration  time.Duration
}

// Failed reports whether the refresh hit an error, as opposed to succeeding
// or being deliberately dropped by the overlap policy or a shutdown.
func (r Result) Failed() bool {
	switch r.Outcome {
	case OutcomeNetwork, OutcomeStatus, OutcomeDecode, OutcomeView:
		return true
	}
	return false
}

func classify(ctx context.Context, err error) Outcome {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return OutcomeCanceled
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return OutcomeStatus
	}
	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return OutcomeDecode
	}
	return OutcomeNetwork
}

// LogResults is the default result policy: failures are logged and
// otherwise ignored, leaving the last rendered content on screen.
func LogResults(logger *zap.Logger) func(Result) {
	return func(r Result) {
		fields := []zap.Field{
			zap.String("operation", string(r.Operation)),
			zap.String("outcome", string(r.Outcome)),
			zap.Uint64("seq", r.Seq),
			zap.Duration("duration", r.Duration),
		}
		if r.RequestID != "" {
			fields = append(fields, zap.String("requestId", r.RequestID))
		}

		switch {
		case r.Outcome == OutcomeOK:
			logger.Info("dashboard refreshed", fields...)
		case r.Failed():
			logger.Error("failed to refresh dashboard", append(fields, zap.Error(r.Err))...)
		default:
			logger.Debug("dashboard refresh dropped", fields...)
		}
	}
}
