package direction

import (
	"fmt"

	"github.com/trogers1052/bond-crm-service/internal/models"
)

// Reconcile applies an independent classification to c. When independent is
// Unknown or already equals c.Direction nothing changes. Otherwise the
// direction is replaced, the override is appended to the notes and the
// confidence drops to medium. It reports whether c was changed.
func Reconcile(c *models.TradeCandidate, independent Direction) bool {
	if c == nil || !independent.Known() || string(independent) == c.Direction {
		return false
	}

	original := c.Direction
	c.Notes += correctionNote(original, independent)
	c.Direction = string(independent)
	c.Confidence = models.ConfidenceMedium
	return true
}

func correctionNote(original string, corrected Direction) string {
	if original == "" {
		original = "NONE"
	}
	return fmt.Sprintf(" [Auto-corrected from %s to %s]", original, corrected)
}
