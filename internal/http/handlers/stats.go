package handlers

import (
	"net/http"
	"strconv"

	"server/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var totalUsers, opsSucceeded, opsFailed, opsLast24h, creditsConsumed int64
	if err := row.Scan(&totalUsers, &opsSucceeded, &opsFailed, &opsLast24h, &creditsConsumed); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_users":          totalUsers,
		"operations_succeeded": opsSucceeded,
		"operations_failed":    opsFailed,
		"operations_last_24h":  opsLast24h,
		"credits_consumed":     creditsConsumed,
	})
}

func (a *App) StatsTopTools(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 && v <= 365 {
		days = v
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QStatsTopTools, days, 10)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	defer rows.Close()

	type toolCount struct {
		ToolName    string `json:"tool_name"`
		Invocations int64  `json:"invocations"`
	}
	items := make([]toolCount, 0, 10)
	for rows.Next() {
		var tc toolCount
		if err := rows.Scan(&tc.ToolName, &tc.Invocations); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
			return
		}
		items = append(items, tc)
	}
	a.json(w, http.StatusOK, map[string]any{"days": days, "items": items})
}
