package handlers

import (
	"net/http"
	"time"

	"server/internal/domain"
)

type profileDTO struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Plan             string    `json:"plan"`
	CreditsRemaining int       `json:"credits_remaining"`
	CreditsUsed      int       `json:"credits_used"`
	CreditsResetAt   time.Time `json:"credits_reset_at"`
	Unlimited        bool      `json:"unlimited"`
	MaxFileBytes     int64     `json:"max_file_bytes"`
	Processing       bool      `json:"processing"`
}

// profileDTO renders a profile with the effective (overlay-aware) balance so
// a just-finished invocation shows its decrement before reconciliation lands.
func (a *App) profileDTO(p *domain.Profile) profileDTO {
	return profileDTO{
		ID:               p.ID,
		Email:            p.Email,
		FullName:         p.FullName,
		Plan:             string(p.Plan),
		CreditsRemaining: a.Gate.EffectiveCredits(p.ID, p.CreditsRemaining),
		CreditsUsed:      p.CreditsUsed,
		CreditsResetAt:   p.CreditsResetAt,
		Unlimited:        !p.Plan.Billable(),
		MaxFileBytes:     p.Plan.MaxFileBytes(),
		Processing:       a.Gate.Processing(p.ID),
	}
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	profile, err := a.Provider.Profile(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "profile not found")
		return
	}
	a.json(w, http.StatusOK, a.profileDTO(profile))
}
