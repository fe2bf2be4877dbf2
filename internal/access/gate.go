package access

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Decision is the outcome of an entitlement or validation check.
type Decision struct {
	Allowed bool
	Reason  string
	Err     error
}

// AccessError carries a human-readable reason while staying matchable
// against the domain sentinel it wraps.
type AccessError struct {
	Reason string
	Kind   error
}

func (e *AccessError) Error() string { return e.Reason }
func (e *AccessError) Unwrap() error { return e.Kind }

func (d Decision) deny() error {
	return &AccessError{Reason: d.Reason, Kind: d.Err}
}

// FileInfo describes one uploaded input.
type FileInfo struct {
	Name      string
	SizeBytes int64
}

// ToolRequest is one gated invocation.
type ToolRequest struct {
	UserID  string
	Tool    domain.Tool
	Files   []FileInfo
	Country string
}

// Work is the caller-supplied transformation. The gate neither inspects nor
// constrains it beyond awaiting its result.
type Work func(ctx context.Context) (any, error)

// Gate is the single choke point for billable tool invocations: it checks
// entitlement and file ceilings, runs the transformation, keeps the
// optimistic credit overlay honest, and hands accounting plus usage logging
// to the outbox.
type Gate struct {
	provider *Provider
	usage    UsageRecorder
	outbox   *Outbox
	overlay  *creditOverlay
	logger   zerolog.Logger

	busyMu sync.Mutex
	busy   map[string]bool
}

// NewGate wires a Gate. settleDelay bounds how long an optimistic value may
// outlive its invocation before snapping back to the authoritative balance.
func NewGate(provider *Provider, usage UsageRecorder, outbox *Outbox, settleDelay time.Duration, logger zerolog.Logger) *Gate {
	if settleDelay <= 0 {
		settleDelay = 5 * time.Second
	}
	return &Gate{
		provider: provider,
		usage:    usage,
		outbox:   outbox,
		overlay:  newCreditOverlay(settleDelay),
		logger:   logger,
		busy:     make(map[string]bool),
	}
}

// CanAccessTool decides whether the user may start an invocation. Tool
// identity does not gate access; every plan reaches every tool and only the
// credit balance matters.
func (g *Gate) CanAccessTool(ctx context.Context, userID, toolID string) Decision {
	profile, err := g.provider.Profile(ctx, userID)
	if err != nil || profile == nil {
		return Decision{Reason: "no active subscription profile", Err: domain.ErrUnauthorized}
	}
	if profile.Plan.Billable() && g.EffectiveCredits(userID, profile.CreditsRemaining) <= 0 {
		return Decision{Reason: "no credits remaining", Err: domain.ErrNoCredits}
	}
	return Decision{Allowed: true}
}

// CheckFileSize validates one byte count against the plan ceiling. Batch
// tools must also pass the summed size of all inputs through here.
func (g *Gate) CheckFileSize(plan domain.Plan, bytes int64) Decision {
	if bytes > plan.MaxFileBytes() {
		return Decision{
			Reason: "file exceeds the " + plan.MaxFileLabel() + " limit for " + plan.String() + " plan",
			Err:    domain.ErrFileTooLarge,
		}
	}
	return Decision{Allowed: true}
}

// EffectiveCredits returns the balance entitlement checks and display use:
// the optimistic overlay when active, else the authoritative value.
func (g *Gate) EffectiveCredits(userID string, authoritative int) int {
	return g.overlay.effective(userID, authoritative)
}

// Processing reports whether the user has an invocation in flight. It backs
// the UI busy state and is deliberately not a mutex.
func (g *Gate) Processing(userID string) bool {
	g.busyMu.Lock()
	defer g.busyMu.Unlock()
	return g.busy[userID]
}

func (g *Gate) setProcessing(userID string, v bool) {
	g.busyMu.Lock()
	if v {
		g.busy[userID] = true
	} else {
		delete(g.busy, userID)
	}
	g.busyMu.Unlock()
}

// ProcessTool orchestrates one gated invocation. Entitlement and validation
// failures are returned before any mutation; a failed transformation rolls
// the overlay back and returns the original error; accounting and usage
// logging run through the outbox and never block or fail the call.
func (g *Gate) ProcessTool(ctx context.Context, req ToolRequest, work Work) (result any, err error) {
	if d := g.CanAccessTool(ctx, req.UserID, req.Tool.ID); !d.Allowed {
		return nil, d.deny()
	}

	profile, perr := g.provider.Profile(ctx, req.UserID)
	if perr != nil || profile == nil {
		return nil, &AccessError{Reason: "no active subscription profile", Kind: domain.ErrUnauthorized}
	}

	var total int64
	for _, f := range req.Files {
		if d := g.CheckFileSize(profile.Plan, f.SizeBytes); !d.Allowed {
			return nil, d.deny()
		}
		total += f.SizeBytes
	}
	if len(req.Files) > 1 {
		if d := g.CheckFileSize(profile.Plan, total); !d.Allowed {
			return nil, d.deny()
		}
	}

	g.setProcessing(req.UserID, true)

	billable := profile.Plan.Billable()
	if billable {
		next := g.EffectiveCredits(req.UserID, profile.CreditsRemaining) - 1
		if next < 0 {
			next = 0
		}
		g.overlay.apply(req.UserID, next)
	}

	result, err = work(ctx)
	success := err == nil
	if !success {
		g.overlay.rollback(req.UserID)
	}

	g.finish(req, total, billable, success, err)

	if !success {
		return nil, err
	}
	return result, nil
}

// finish performs the post-invocation bookkeeping regardless of outcome.
func (g *Gate) finish(req ToolRequest, totalBytes int64, billable, success bool, workErr error) {
	g.setProcessing(req.UserID, false)

	entry := domain.UsageLog{
		UserID:        req.UserID,
		ToolName:      req.Tool.Name,
		FileSizeBytes: totalBytes,
		Success:       success,
		Country:       req.Country,
	}
	if workErr != nil {
		entry.ErrorMessage = workErr.Error()
	}
	g.outbox.Enqueue("usage_log", func(ctx context.Context) error {
		return g.usage.RecordUsage(ctx, entry)
	})

	if success && billable {
		userID := req.UserID
		g.outbox.Enqueue("credit_consume", func(ctx context.Context) error {
			if _, _, err := g.provider.Store().ConsumeCredit(ctx, userID); err != nil {
				// The overlay may now show a wrong number; clear it so the
				// authoritative value shows instead.
				g.overlay.settle(userID)
				return err
			}
			if _, err := g.provider.Refresh(ctx, userID); err != nil {
				g.logger.Error().Err(err).Str("user_id", userID).Msg("profile refresh after credit consume failed")
			}
			return nil
		})
	}

	if billable {
		g.overlay.scheduleSettle(req.UserID)
	}
}

// OverlayState exposes the overlay lifecycle for a user.
func (g *Gate) OverlayState(userID string) OverlayState {
	return g.overlay.state(userID)
}
