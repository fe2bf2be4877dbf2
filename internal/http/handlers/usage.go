package handlers

import (
	"net/http"
	"strconv"
	"time"
)

type usageDTO struct {
	ID            string    `json:"id"`
	ToolName      string    `json:"tool_name"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	Success       bool      `json:"success"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	Country       string    `json:"country,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (a *App) UsageList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := a.Usage.ListByUser(r.Context(), userID, limit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load usage history")
		return
	}
	items := make([]usageDTO, 0, len(logs))
	for _, l := range logs {
		items = append(items, usageDTO{
			ID:            l.ID,
			ToolName:      l.ToolName,
			FileSizeBytes: l.FileSizeBytes,
			Success:       l.Success,
			ErrorMessage:  l.ErrorMessage,
			Country:       l.Country,
			CreatedAt:     l.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
