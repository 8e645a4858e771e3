package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeCandidate_RoundTripKeepsLayout(t *testing.T) {
	inputs := []string{
		`{"clientName":"BOSERA","price":"99-16","direction":"BUY"}`,
		`{"clientName":"BOSERA","size":"10MM","direction":"BUY","dealer":"PAUL"}`,
		`{"direction":7,"clientName":"EFUND","size":10,"price":null,"tags":["hy","asia"]}`,
		`{"clientName":"X","size":1.50,"price":98.750,"notes":"","confidence":"low"}`,
		`{}`,
	}

	for _, in := range inputs {
		var c TradeCandidate
		require.NoError(t, json.Unmarshal([]byte(in), &c), in)

		out, err := json.Marshal(c)
		require.NoError(t, err, in)
		assert.Equal(t, in, string(out))
	}
}

func TestTradeCandidate_DecodesKnownFields(t *testing.T) {
	var c TradeCandidate
	err := json.Unmarshal([]byte(`{"clientName":"BOSERA","isin":"XS123","size":"10","price":"99-16","direction":"BUY","confidence":"high"}`), &c)
	require.NoError(t, err)

	assert.Equal(t, "BOSERA", c.ClientName)
	assert.Equal(t, "XS123", c.ISIN)
	assert.Equal(t, DirectionBuy, c.Direction)
	assert.Equal(t, ConfidenceHigh, c.Confidence)
	require.True(t, c.Size.Valid)
	assert.True(t, c.Size.Decimal.Equal(decimal.NewFromInt(10)))
	assert.False(t, c.Price.Valid)
	assert.Equal(t, "99-16", c.Price.String())
}

func TestTradeCandidate_ChangedFieldsAreRewrittenInPlace(t *testing.T) {
	var c TradeCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"clientName":"BOSERA","direction":"SELL","price":"99-16","dealer":"PAUL"}`), &c))

	c.Direction = DirectionBuy
	c.Notes += " [Auto-corrected from SELL to BUY]"
	c.Confidence = ConfidenceMedium

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"clientName":"BOSERA","direction":"BUY","price":"99-16","dealer":"PAUL","notes":" [Auto-corrected from SELL to BUY]","confidence":"medium"}`,
		string(out))
}

func TestTradeCandidate_NonStringTextIsReplacedOnlyWhenChanged(t *testing.T) {
	var c TradeCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"clientName":"A","direction":null}`), &c))
	assert.Empty(t, c.Direction)

	c.Direction = DirectionSell
	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"clientName":"A","direction":"SELL"}`, string(out))
}

func TestTradeCandidate_BuiltInCode(t *testing.T) {
	c := TradeCandidate{
		ClientName: "BOSERA",
		Size:       NewAmount(decimal.NewFromInt(10)),
		Direction:  DirectionBuy,
	}

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"clientName":"BOSERA","size":10,"direction":"BUY","notes":"","confidence":""}`, string(out))
}

func TestTradeCandidate_RejectsNonObject(t *testing.T) {
	var c TradeCandidate
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`"BOSERA"`), &c))
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
		text  string
	}{
		{"number", `98.75`, true, "98.75"},
		{"numeric string", `"10"`, true, "10"},
		{"32nds quote", `"99-16"`, false, "99-16"},
		{"size with unit", `"10MM"`, false, "10MM"},
		{"null", `null`, false, "null"},
		{"object", `{"v":1}`, false, `{"v":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.in), &a))
			assert.Equal(t, tt.valid, a.Valid)
			assert.Equal(t, tt.text, a.String())
			assert.False(t, a.IsZero())

			out, err := json.Marshal(a)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(out))
		})
	}

	assert.True(t, Amount{}.IsZero())
}
