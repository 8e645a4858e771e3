package models

import (
	"time"
)

// Analysis is the outcome of running one transcript through extraction and
// direction validation.
type Analysis struct {
	ID             string                `json:"id" db:"id"`
	TranscriptHash string                `json:"transcript_hash" db:"transcript_hash"`
	Source         string                `json:"source,omitempty" db:"source"`
	Transcript     string                `json:"transcript" db:"transcript"`
	Model          string                `json:"model,omitempty" db:"model"`
	Activities     []TradeCandidate      `json:"activities" db:"-"`
	Corrections    []DirectionCorrection `json:"corrections" db:"-"`
	Cached         bool                  `json:"cached" db:"-"`
	CreatedAt      time.Time             `json:"created_at" db:"created_at"`
}

// AnalyzeRequest is the input for a full transcript analysis.
type AnalyzeRequest struct {
	Transcript string `json:"transcript"`
	Source     string `json:"source,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
}

// ValidateRequest carries candidates that were extracted elsewhere and only
// need their directions checked against the transcript.
type ValidateRequest struct {
	Transcript string           `json:"transcript"`
	Activities []TradeCandidate `json:"activities"`
}

// ValidationResult is the validated batch plus the overrides that were applied.
type ValidationResult struct {
	Activities  []TradeCandidate      `json:"activities"`
	Corrections []DirectionCorrection `json:"corrections"`
}
