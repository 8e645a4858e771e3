package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Explain(t *testing.T) {
	c := MustClassifier(DefaultInstitutions)

	tests := []struct {
		name string
		text string
		want Direction
		rule string
	}{
		{"asking for bid", "Client: what's your bid on 5MM XYZ bond?", Sell, RuleAskingBid},
		{"asking for bid uppercase", "WHAT'S YOUR BID ON THE 2034S", Sell, RuleAskingBid},
		{"can you bid", "can you bid 3mm of the Treasury 4.5s", Sell, RuleAskingBid},
		{"need a bid", "need a bid for 3mm", Sell, RuleAskingBid},
		{"where is your bid", "where is your bid on DKS 52", Sell, RuleAskingBid},
		{"institution bid", "Bosera: Bosera bid 10mm DKS 52\nPaul: @ 100\nBosera: Done", Buy, RuleMakingBid},
		{"multi-word institution bid", "State Street bid for the 5s", Buy, RuleMakingBid},
		{"first person bid", "I bid 10mm at 100", Buy, RuleMakingBid},
		{"named bid with amount", "acme bid 5 for the 30s", Buy, RuleMakingBid},
		{"asking for offer", "Can you offer me 10MM of Apple bonds?", Buy, RuleAskingOffer},
		{"asking for ask", "where is your ask on DKS 52?", Buy, RuleAskingOffer},
		{"what is your offer", "what is your offer in 2mm", Buy, RuleAskingOffer},
		{"client offers", "Client offers 15mm corporate bonds at 99.5", Sell, RuleMakingOffer},
		{"institution offers", "Fidelity offers 7mm", Sell, RuleMakingOffer},
		{"we offer", "we offer 5mm at 101.25", Sell, RuleMakingOffer},
		{"two-way", "I need a two-way quote on 20MM Microsoft 3.5s", TwoWay, RuleTwoWay},
		{"twoway without hyphen", "twoway on 5mm pls", TwoWay, RuleTwoWay},
		{"bid and offer", "show me bid and offer for 10mm", TwoWay, RuleTwoWay},
		{"no signal", "Paul: morning, anything on the long end?\nClient: just looking today", Unknown, ""},
		{"bid inside a word", "forbid 10 changes", Unknown, ""},
		{"offer inside a word", "The forbidden offering was withdrawn", Unknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := c.Explain(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestClassifier_TwoWayTakesPriority(t *testing.T) {
	c := MustClassifier(DefaultInstitutions)

	texts := []string{
		"Give me both sides on the 2030s, I bid 99",
		"Bosera bid 10mm, also need a two-way",
		"we offer 5mm, what's your bid-offer on the 10s",
		"what's your bid? actually make it a two-way",
	}
	for _, text := range texts {
		assert.Equal(t, TwoWay, c.Classify(text), text)
	}
}

func TestClassifier_MakingBeforeAsking(t *testing.T) {
	c := MustClassifier(DefaultInstitutions)

	assert.Equal(t, Buy, c.Classify("I bid 10mm at 100, what's your offer?"))
	assert.Equal(t, Sell, c.Classify("we offer 5mm at 101 but what's your bid"))
	// making a bid is checked before making an offer
	assert.Equal(t, Buy, c.Classify("we bid 99 and we offer 101"))
}

func TestClassifier_CustomInstitutions(t *testing.T) {
	c, err := NewClassifier([]string{"Acme Capital", " ", "S&P Funds"})
	require.NoError(t, err)

	assert.Equal(t, Buy, c.Classify("Acme Capital bid for the 5s"))
	assert.Equal(t, Sell, c.Classify("S&P Funds offers the 2031s"))
	// Bosera is no longer a known institution
	assert.Equal(t, Unknown, c.Classify("Bosera bid for the 5s"))
}

func TestClassifier_NoInstitutions(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	assert.Equal(t, Unknown, c.Classify("Vanguard bid"))
	assert.Equal(t, Buy, c.Classify("vanguard bid 10 for the 30s"))
	assert.Len(t, c.Rules(), 5)
}

func TestClassifier_RuleOrder(t *testing.T) {
	c := MustClassifier(DefaultInstitutions)
	rules := c.Rules()

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{RuleTwoWay, RuleMakingBid, RuleMakingOffer, RuleAskingBid, RuleAskingOffer}, names)

	rules[0] = Rule{}
	assert.Equal(t, RuleTwoWay, c.Rules()[0].Name)
}
