package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/access"
	"server/internal/adapter/repo"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/pdf"
	"server/internal/storage"
)

// GoogleTokenVerifier verifies a Google ID token and returns its claims.
type GoogleTokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (map[string]any, error)
}

// App bundles the collaborators every handler needs.
type App struct {
	SQL            infra.SQLExecutor
	Logger         zerolog.Logger
	JWTSecret      string
	GoogleVerifier GoogleTokenVerifier

	Provider *access.Provider
	Gate     *access.Gate
	Tools    *pdf.Service
	Profiles *repo.ProfileRepositoryPG
	Usage    *repo.UsageRepositoryPG
	Store    *storage.FileStore
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
