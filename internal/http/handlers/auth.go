package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"server/internal/access"
	"server/internal/middleware"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token"`
}

type googleVerifyResponse struct {
	Token string     `json:"token"`
	User  profileDTO `json:"user"`
}

func (a *App) AuthGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id_token required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	claims, err := a.GoogleVerifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		a.Logger.Error().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid google token")
		return
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "google token missing email")
		return
	}

	profile, err := a.Profiles.UpsertGoogleProfile(r.Context(), email, name)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist profile")
		return
	}

	// Seed the cache so the first profile read renders without a round trip.
	a.Provider.Prime(*profile)
	a.Provider.HandleAuthEvent(r.Context(), access.AuthEvent{Type: access.AuthEventSignedIn, UserID: profile.ID})

	locale := middleware.LocaleFromContext(r.Context())
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      profile.ID,
		Email:    profile.Email,
		Plan:     string(profile.Plan),
		Locale:   locale,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "pdftools-api",
		Audience: "pdftools-clients",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, googleVerifyResponse{Token: token, User: a.profileDTO(profile)})
}

// AuthLogout discards server-side cached state for the session. The client
// is expected to drop its token and hard-navigate to the login route.
func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	a.Provider.HandleAuthEvent(r.Context(), access.AuthEvent{Type: access.AuthEventSignedOut, UserID: userID})
	w.WriteHeader(http.StatusNoContent)
}
