package repo

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UsageRepositoryPG appends and lists usage log rows.
type UsageRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(sql infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{sql: sql}
}

// RecordUsage appends one invocation attempt. Rows are write-once.
func (r *UsageRepositoryPG) RecordUsage(ctx context.Context, entry domain.UsageLog) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUsageLog,
		entry.UserID,
		entry.ToolName,
		entry.FileSizeBytes,
		entry.Success,
		entry.ErrorMessage,
		entry.Country,
	)
	return err
}

// ListByUser returns the most recent entries for a user, newest first.
func (r *UsageRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.UsageLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListUsageByUser, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UsageLog
	for rows.Next() {
		entry := domain.UsageLog{UserID: userID}
		if err := rows.Scan(&entry.ID, &entry.ToolName, &entry.FileSizeBytes, &entry.Success, &entry.ErrorMessage, &entry.Country, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
