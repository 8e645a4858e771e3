package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/bond-crm-service/internal/models"
)

type analysisRow struct {
	models.Analysis
	ActivitiesJSON []byte `db:"activities"`
}

func (r *analysisRow) toModel() (*models.Analysis, error) {
	a := r.Analysis
	a.Activities = []models.TradeCandidate{}
	if len(r.ActivitiesJSON) > 0 {
		if err := json.Unmarshal(r.ActivitiesJSON, &a.Activities); err != nil {
			return nil, fmt.Errorf("failed to decode activities for analysis %s: %w", a.ID, err)
		}
	}
	a.Corrections = []models.DirectionCorrection{}
	return &a, nil
}

// SaveAnalysis stores an analysis and its direction corrections in one
// transaction. Correction IDs and timestamps are filled in on success.
func (db *DB) SaveAnalysis(ctx context.Context, a *models.Analysis) error {
	activities, err := json.Marshal(a.Activities)
	if err != nil {
		return fmt.Errorf("failed to encode activities: %w", err)
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (id, transcript_hash, source, transcript, model, activities, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.TranscriptHash, a.Source, a.Transcript, a.Model, activities, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", a.ID, err)
	}

	for i := range a.Corrections {
		c := &a.Corrections[i]
		c.AnalysisID = a.ID
		if c.ReviewStatus == "" {
			c.ReviewStatus = models.ReviewPending
		}
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO direction_corrections (
				analysis_id, candidate_index, client_name,
				original_direction, corrected_direction, matched_rule, review_status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`, c.AnalysisID, c.CandidateIndex, c.ClientName,
			c.OriginalDirection, c.CorrectedDirection, c.Rule, c.ReviewStatus,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert correction for candidate %d: %w", c.CandidateIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis %s: %w", a.ID, err)
	}
	return nil
}

// GetAnalysis retrieves an analysis with its corrections
func (db *DB) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	var row analysisRow
	err := db.conn.GetContext(ctx, &row, `
		SELECT id, transcript_hash, source, transcript, model, activities, created_at
		FROM analyses
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	a, err := row.toModel()
	if err != nil {
		return nil, err
	}

	err = db.conn.SelectContext(ctx, &a.Corrections, `
		SELECT id, analysis_id, candidate_index, client_name, original_direction,
		       corrected_direction, matched_rule, review_status, reviewed_at, created_at
		FROM direction_corrections
		WHERE analysis_id = $1
		ORDER BY candidate_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get corrections for analysis %s: %w", id, err)
	}

	return a, nil
}

// ListAnalyses returns the most recent analyses, newest first, without
// their corrections.
func (db *DB) ListAnalyses(ctx context.Context, limit int, since *time.Time) ([]*models.Analysis, error) {
	query := `
		SELECT id, transcript_hash, source, transcript, model, activities, created_at
		FROM analyses
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *since)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	var rows []analysisRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	analyses := make([]*models.Analysis, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}
