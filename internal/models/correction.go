package models

import "time"

// Review states for an automatic direction correction
const (
	ReviewPending  = "pending"
	ReviewAccepted = "accepted"
	ReviewRejected = "rejected"
)

// DirectionCorrection records one override of the extractor's direction by
// the rule-based validator.
type DirectionCorrection struct {
	ID                 int        `json:"id,omitempty" db:"id"`
	AnalysisID         string     `json:"analysis_id,omitempty" db:"analysis_id"`
	CandidateIndex     int        `json:"candidate_index" db:"candidate_index"`
	ClientName         string     `json:"client_name" db:"client_name"`
	OriginalDirection  string     `json:"original_direction" db:"original_direction"`
	CorrectedDirection string     `json:"corrected_direction" db:"corrected_direction"`
	Rule               string     `json:"rule" db:"matched_rule"`
	ReviewStatus       string     `json:"review_status,omitempty" db:"review_status"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// CorrectionSummary holds aggregate counts of correction reviews.
type CorrectionSummary struct {
	Total    int `json:"total" db:"total"`
	Accepted int `json:"accepted" db:"accepted"`
	Rejected int `json:"rejected" db:"rejected"`
	Pending  int `json:"pending" db:"pending"`
}
