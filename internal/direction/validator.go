package direction

import (
	"github.com/trogers1052/bond-crm-service/internal/models"
)

// Validator re-derives each candidate's direction from its slice of the
// transcript and overrides the extractor where the two disagree.
type Validator struct {
	classifier *Classifier
}

// NewValidator creates a Validator backed by classifier.
func NewValidator(classifier *Classifier) *Validator {
	return &Validator{classifier: classifier}
}

// Classifier returns the rule table used by the validator.
func (v *Validator) Classifier() *Classifier {
	return v.classifier
}

// ValidateCandidate checks a single candidate. The returned candidate is a
// copy; the correction is nil when nothing was overridden.
func (v *Validator) ValidateCandidate(transcript string, c models.TradeCandidate) (models.TradeCandidate, *models.DirectionCorrection) {
	slice := ExtractContext(transcript, c.ClientName)
	independent, rule := v.classifier.Explain(slice)

	original := c.Direction
	if !Reconcile(&c, independent) {
		return c, nil
	}

	return c, &models.DirectionCorrection{
		ClientName:         c.ClientName,
		OriginalDirection:  original,
		CorrectedDirection: c.Direction,
		Rule:               rule,
		ReviewStatus:       models.ReviewPending,
	}
}

// Validate checks every candidate independently. The result has the same
// length and order as candidates, which is left unmodified.
func (v *Validator) Validate(transcript string, candidates []models.TradeCandidate) models.ValidationResult {
	result := models.ValidationResult{
		Activities:  make([]models.TradeCandidate, len(candidates)),
		Corrections: []models.DirectionCorrection{},
	}

	for i, c := range candidates {
		validated, correction := v.ValidateCandidate(transcript, c)
		result.Activities[i] = validated
		if correction != nil {
			correction.CandidateIndex = i
			result.Corrections = append(result.Corrections, *correction)
		}
	}

	return result
}
