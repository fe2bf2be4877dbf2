package domain

import "time"

// Profile is the subscription profile of an authenticated account.
type Profile struct {
	ID               string
	Email            string
	FullName         string
	Plan             Plan
	CreditsRemaining int
	CreditsUsed      int
	CreditsResetAt   time.Time
	SubscriptionID   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasCredits reports whether the profile may start a billable invocation.
// Enterprise accounts are always allowed regardless of the stored balance.
func (p Profile) HasCredits() bool {
	if !p.Plan.Billable() {
		return true
	}
	return p.CreditsRemaining > 0
}
