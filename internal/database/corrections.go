package database

import (
	"context"
	"fmt"

	"github.com/trogers1052/bond-crm-service/internal/models"
)

// CorrectionFilter narrows ListCorrections
type CorrectionFilter struct {
	Limit      int
	Status     string
	ClientName string
}

// ListCorrections returns direction corrections, newest first
func (db *DB) ListCorrections(ctx context.Context, f CorrectionFilter) ([]models.DirectionCorrection, error) {
	query := `
		SELECT id, analysis_id, candidate_index, client_name, original_direction,
		       corrected_direction, matched_rule, review_status, reviewed_at, created_at
		FROM direction_corrections
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND review_status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}

	if f.ClientName != "" {
		query += fmt.Sprintf(" AND UPPER(client_name) = UPPER($%d)", argIdx)
		args = append(args, f.ClientName)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
	}

	corrections := []models.DirectionCorrection{}
	if err := db.conn.SelectContext(ctx, &corrections, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	return corrections, nil
}

// ReviewCorrection records a trader's verdict on an automatic correction
func (db *DB) ReviewCorrection(ctx context.Context, id int, status string) error {
	if status != models.ReviewAccepted && status != models.ReviewRejected {
		return fmt.Errorf("invalid review status %q", status)
	}

	result, err := db.conn.ExecContext(ctx, `
		UPDATE direction_corrections
		SET review_status = $2, reviewed_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to review correction %d: %w", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("correction %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetCorrectionSummary returns aggregate counts by review status
func (db *DB) GetCorrectionSummary(ctx context.Context) (*models.CorrectionSummary, error) {
	var summary models.CorrectionSummary
	err := db.conn.GetContext(ctx, &summary, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE review_status = 'accepted') AS accepted,
			COUNT(*) FILTER (WHERE review_status = 'rejected') AS rejected,
			COUNT(*) FILTER (WHERE review_status = 'pending') AS pending
		FROM direction_corrections
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get correction summary: %w", err)
	}
	return &summary, nil
}
