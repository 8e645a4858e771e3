package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a size or price as the extractor reported it. Numbers, and
// strings holding a plain number, decode into Decimal. Anything else, such
// as a 32nds quote "99-16" or "10MM", leaves Valid false. The token that was
// read is written back unchanged.
type Amount struct {
	Decimal decimal.Decimal
	Valid   bool

	raw json.RawMessage
}

// NewAmount returns a valid Amount holding d
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

// IsZero reports whether the amount was neither set nor read from JSON
func (a Amount) IsZero() bool {
	return !a.Valid && len(a.raw) == 0
}

// String returns the decimal value, or the text that could not be read as one
func (a Amount) String() string {
	if a.Valid {
		return a.Decimal.String()
	}
	var s string
	if err := json.Unmarshal(a.raw, &s); err == nil {
		return s
	}
	return string(a.raw)
}

// UnmarshalJSON never fails: unreadable values are kept verbatim
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{raw: append(json.RawMessage(nil), data...)}

	token := bytes.TrimSpace(data)
	if len(token) == 0 || bytes.Equal(token, []byte("null")) {
		return nil
	}

	text := string(token)
	if token[0] == '"' {
		if err := json.Unmarshal(token, &text); err != nil {
			return nil
		}
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(text)); err == nil {
		a.Decimal, a.Valid = d, true
	}
	return nil
}

// MarshalJSON writes the token that was read, or the decimal as a JSON number
func (a Amount) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}
