package refresher

import (
	"context"
	"time"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/api"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/render"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/view"
)

type Fetcher interface {
	GetStats(ctx context.Context) (*api.StatsResponse, string, error)
	GetGovernance(ctx context.Context) (*api.GovernanceResponse, string, error)
}

type SlotWriter interface {
	Set(updates map[view.Slot]string) error
}

// Refresher fetches dashboard data and writes the rendered result into the
// view. Each operation is independent and safe to call concurrently.
type Refresher struct {
	fetcher    Fetcher
	view       SlotWriter
	renderer   *render.Renderer
	stats      *guard
	governance *guard
}

func New(fetcher Fetcher, w SlotWriter, renderer *render.Renderer, policy Policy) *Refresher {
	return &Refresher{
		fetcher:    fetcher,
		view:       w,
		renderer:   renderer,
		stats:      &guard{policy: policy},
		governance: &guard{policy: policy},
	}
}

func (r *Refresher) RefreshStats(ctx context.Context) Result {
	return r.refresh(ctx, OperationStats, r.stats, func(ctx context.Context) (map[view.Slot]string, string, error) {
		stats, requestID, err := r.fetcher.GetStats(ctx)
		if err != nil {
			return nil, requestID, err
		}
		out := r.renderer.Stats(stats)
		return map[view.Slot]string{
			view.TotalCommits:   out.TotalCommits,
			view.AvgDevelopers:  out.AvgDevelopers,
			view.CodespaceHours: out.CodespaceHours,
			view.CostEstimate:   out.CostEstimate,
		}, requestID, nil
	})
}

func (r *Refresher) RefreshGovernance(ctx context.Context) Result {
	return r.refresh(ctx, OperationGovernance, r.governance, func(ctx context.Context) (map[view.Slot]string, string, error) {
		gov, requestID, err := r.fetcher.GetGovernance(ctx)
		if err != nil {
			return nil, requestID, err
		}
		return map[view.Slot]string{
			view.PoliciesList:     r.renderer.Policies(gov.Policies),
			view.ComplianceStatus: r.renderer.Compliance(gov.Compliance),
			view.CostControls:     r.renderer.CostControls(gov.CostControls),
		}, requestID, nil
	})
}

type loadFunc func(ctx context.Context) (map[view.Slot]string, string, error)

func (r *Refresher) refresh(ctx context.Context, op Operation, g *guard, load loadFunc) (res Result) {
	start := time.Now()
	seq, ok := g.begin()
	res = Result{Operation: op, Seq: seq}
	defer func() { res.Duration = time.Since(start) }()

	if !ok {
		res.Outcome = OutcomeSkipped
		return res
	}
	defer g.end()

	slots, requestID, err := load(ctx)
	res.RequestID = requestID
	if err != nil {
		res.Outcome = classify(ctx, err)
		res.Err = err
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Outcome = OutcomeCanceled
		res.Err = err
		return res
	}

	applied, err := g.commit(seq, func() error { return r.view.Set(slots) })
	switch {
	case err != nil:
		res.Outcome = OutcomeView
		res.Err = err
	case !applied:
		res.Outcome = OutcomeSuperseded
	default:
		res.Outcome = OutcomeOK
	}
	return res
}
