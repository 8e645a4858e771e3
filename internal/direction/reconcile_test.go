package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

func TestReconcile_Override(t *testing.T) {
	c := models.TradeCandidate{
		ClientName: "ABC FUND",
		Direction:  models.DirectionBuy,
		Notes:      "Client asking for bid on 10MM",
		Confidence: models.ConfidenceHigh,
	}

	changed := Reconcile(&c, Sell)

	assert.True(t, changed)
	assert.Equal(t, models.DirectionSell, c.Direction)
	assert.Equal(t, models.ConfidenceMedium, c.Confidence)
	assert.Equal(t, "Client asking for bid on 10MM [Auto-corrected from BUY to SELL]", c.Notes)
}

func TestReconcile_Agreement(t *testing.T) {
	c := models.TradeCandidate{
		Direction:  models.DirectionSell,
		Notes:      "looking to sell",
		Confidence: models.ConfidenceHigh,
	}
	before := c

	assert.False(t, Reconcile(&c, Sell))
	assert.Equal(t, before, c)
}

func TestReconcile_UnknownNeverOverrides(t *testing.T) {
	c := models.TradeCandidate{
		Direction:  models.DirectionBuy,
		Confidence: models.ConfidenceLow,
	}
	before := c

	assert.False(t, Reconcile(&c, Unknown))
	assert.Equal(t, before, c)
}

func TestReconcile_MissingDirection(t *testing.T) {
	c := models.TradeCandidate{}

	assert.True(t, Reconcile(&c, TwoWay))
	assert.Equal(t, models.DirectionTwoWay, c.Direction)
	assert.Equal(t, models.ConfidenceMedium, c.Confidence)
	assert.Equal(t, " [Auto-corrected from NONE to TWO-WAY]", c.Notes)
}

func TestReconcile_UnrecognizedDirection(t *testing.T) {
	c := models.TradeCandidate{Direction: "buying"}

	assert.True(t, Reconcile(&c, Buy))
	assert.Equal(t, models.DirectionBuy, c.Direction)
	assert.Contains(t, c.Notes, "from buying to BUY")
}

func TestReconcile_NilCandidate(t *testing.T) {
	assert.False(t, Reconcile(nil, Sell))
}
