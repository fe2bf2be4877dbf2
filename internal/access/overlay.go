package access

import (
	"sync"
	"time"
)

// OverlayState identifies where a user's optimistic credit value sits in its
// lifecycle.
type OverlayState int

const (
	// OverlaySettled means no overlay is active; the authoritative balance
	// is the one to display.
	OverlaySettled OverlayState = iota
	// OverlayOptimistic means a locally computed balance is standing in for
	// the authoritative one while an invocation is in flight or reconciling.
	OverlayOptimistic
	// OverlayRollingBack is the transient state entered when an invocation
	// fails; the overlay is discarded so the failed call never appears to
	// have consumed a credit.
	OverlayRollingBack
)

// creditOverlay tracks per-user optimistic credit values. Three events drive
// the state machine: a failed invocation rolls the overlay back immediately,
// a settle timer forces a return to the authoritative value, and an explicit
// settle (after the background refresh confirms) does the same.
type creditOverlay struct {
	mu          sync.Mutex
	entries     map[string]*overlayEntry
	settleDelay time.Duration
}

type overlayEntry struct {
	state   OverlayState
	credits int
	timer   *time.Timer
}

func newCreditOverlay(settleDelay time.Duration) *creditOverlay {
	return &creditOverlay{
		entries:     make(map[string]*overlayEntry),
		settleDelay: settleDelay,
	}
}

// effective returns the credit count entitlement checks and display should
// use: the overlay value when one is active, else the authoritative one.
func (o *creditOverlay) effective(userID string, authoritative int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.entries[userID]; ok && e.state == OverlayOptimistic {
		return e.credits
	}
	return authoritative
}

// state reports the current lifecycle state for a user.
func (o *creditOverlay) state(userID string) OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.entries[userID]; ok {
		return e.state
	}
	return OverlaySettled
}

// apply installs an optimistic value and restarts the settle timer.
func (o *creditOverlay) apply(userID string, credits int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if prev, ok := o.entries[userID]; ok && prev.timer != nil {
		prev.timer.Stop()
	}
	o.entries[userID] = &overlayEntry{state: OverlayOptimistic, credits: credits}
}

// scheduleSettle arms the timer that forces the overlay back to the
// authoritative value in case the background refresh is slow or lost.
func (o *creditOverlay) scheduleSettle(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.entries[userID]
	if !ok || e.state != OverlayOptimistic {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(o.settleDelay, func() { o.settle(userID) })
}

// settle discards the overlay; subsequent reads see the authoritative value.
func (o *creditOverlay) settle(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remove(userID)
}

// rollback discards the overlay immediately after a failed invocation.
func (o *creditOverlay) rollback(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.entries[userID]; ok {
		e.state = OverlayRollingBack
	}
	o.remove(userID)
}

// remove expects o.mu held.
func (o *creditOverlay) remove(userID string) {
	if e, ok := o.entries[userID]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(o.entries, userID)
	}
}
