package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UploadAudit records the outcome of one submitted upload batch.
type UploadAudit struct {
	ID            string    `json:"id"`
	Operator      string    `json:"operator"`
	RowCount      int       `json:"row_count"`
	DeletionCount int       `json:"deletion_count"`
	Status        string    `json:"status"` // "submitted" or "failed"
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// UploadAuditRepository stores upload audit records.
type UploadAuditRepository struct {
	db *sql.DB
}

// NewUploadAuditRepository creates a new upload audit repository.
func NewUploadAuditRepository(db *sql.DB) *UploadAuditRepository {
	return &UploadAuditRepository{db: db}
}

// Store saves one audit record.
func (r *UploadAuditRepository) Store(ctx context.Context, audit UploadAudit) error {
	query := `
		INSERT INTO upload_audits (id, operator, row_count, deletion_count, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		audit.ID,
		audit.Operator,
		audit.RowCount,
		audit.DeletionCount,
		audit.Status,
		audit.Error,
		audit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload audit: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent audit records, newest first.
func (r *UploadAuditRepository) ListRecent(ctx context.Context, limit int) ([]UploadAudit, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, operator, row_count, deletion_count, status, error, created_at
		FROM upload_audits
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload audits: %w", err)
	}
	defer rows.Close()

	var audits []UploadAudit
	for rows.Next() {
		var audit UploadAudit
		if err := rows.Scan(
			&audit.ID,
			&audit.Operator,
			&audit.RowCount,
			&audit.DeletionCount,
			&audit.Status,
			&audit.Error,
			&audit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload audit: %w", err)
		}
		audits = append(audits, audit)
	}
	return audits, rows.Err()
}
