package direction

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultInstitutions are counterparties that quote in the third person,
// e.g. "Bosera bid 10mm".
var DefaultInstitutions = []string{
	"Bosera",
	"Fidelity",
	"BlackRock",
	"eFund",
	"Vanguard",
	"PIMCO",
	"JPMorgan",
	"State Street",
	"Invesco",
}

// Rule names, in evaluation order
const (
	RuleTwoWay      = "two_way"
	RuleMakingBid   = "making_bid"
	RuleMakingOffer = "making_offer"
	RuleAskingBid   = "asking_bid"
	RuleAskingOffer = "asking_offer"
)

// Rule maps a group of phrasings to a direction. A rule fires when any of
// its patterns matches.
type Rule struct {
	Name     string
	Result   Direction
	Patterns []*regexp.Regexp
}

// Match reports whether any pattern of the rule matches text.
func (r Rule) Match(text string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Classifier evaluates an ordered rule table. The first rule that fires
// decides the direction.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the rule table. Institutions extend the "making a
// bid/offer" rules with "<institution> bid" and "<institution> offer(s)";
// an empty list disables those patterns.
func NewClassifier(institutions []string) (*Classifier, error) {
	names := make([]string, 0, len(institutions))
	for _, name := range institutions {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, regexp.QuoteMeta(strings.ToLower(name)))
	}

	makingBid := []string{`(?i)\b(i bid|we bid|[a-z]+ bid \d+|client bid)\b`}
	makingOffer := []string{`(?i)\b(i offer|we offer|[a-z]+ offers? \d+|client offers?)\b`}
	if len(names) > 0 {
		group := strings.Join(names, "|")
		makingBid = append(makingBid, `(?i)\b(`+group+`) bid\b`)
		makingOffer = append(makingOffer, `(?i)\b(`+group+`) offers?\b`)
	}

	table := []struct {
		name     string
		result   Direction
		patterns []string
	}{
		{RuleTwoWay, TwoWay, []string{
			`(?i)\b(two-?way|both sides|bid and offer|bid-offer)\b`,
		}},
		{RuleMakingBid, Buy, makingBid},
		{RuleMakingOffer, Sell, makingOffer},
		{RuleAskingBid, Sell, []string{
			`(?i)\b(what'?s? (is )?your bid|can you bid|give me a bid|show me (a|your) bid)\b`,
			`(?i)\b(where('?s| is) your bid|need a bid)\b`,
		}},
		{RuleAskingOffer, Buy, []string{
			`(?i)\b(what'?s? (is )?your (offer|ask)|can you offer|give me an offer|offer me)\b`,
			`(?i)\b(where('?s| is) your (offer|ask)|show me (an|your) (offer|ask))\b`,
		}},
	}

	c := &Classifier{rules: make([]Rule, 0, len(table))}
	for _, entry := range table {
		rule := Rule{Name: entry.name, Result: entry.result}
		for _, expr := range entry.patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("failed to compile %s pattern: %w", entry.name, err)
			}
			rule.Patterns = append(rule.Patterns, re)
		}
		c.rules = append(c.rules, rule)
	}
	return c, nil
}

// MustClassifier is NewClassifier for static institution lists.
func MustClassifier(institutions []string) *Classifier {
	c, err := NewClassifier(institutions)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the direction implied by text, or Unknown.
func (c *Classifier) Classify(text string) Direction {
	d, _ := c.Explain(text)
	return d
}

// Explain is Classify plus the name of the rule that fired. The rule name is
// empty when the result is Unknown.
func (c *Classifier) Explain(text string) (Direction, string) {
	for _, rule := range c.rules {
		if rule.Match(text) {
			return rule.Result, rule.Name
		}
	}
	return Unknown, ""
}

// Rules returns the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
