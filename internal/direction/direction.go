// Package direction infers whether a counterparty is buying or selling from
// the bid/offer phrasing of a chat transcript, and reconciles that inference
// with the direction proposed by the transcript extractor.
package direction

import "github.com/trogers1052/bond-crm-service/internal/models"

// Direction is the outcome of an independent classification pass.
type Direction string

const (
	Buy    Direction = models.DirectionBuy
	Sell   Direction = models.DirectionSell
	TwoWay Direction = models.DirectionTwoWay

	// Unknown means no rule fired. It is never written into a candidate.
	Unknown Direction = "UNKNOWN"
)

func (d Direction) String() string {
	return string(d)
}

// Known reports whether d carries a usable signal.
func (d Direction) Known() bool {
	return d == Buy || d == Sell || d == TwoWay
}
