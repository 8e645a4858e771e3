package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Trade directions as they appear on a TradeCandidate
const (
	DirectionBuy    = "BUY"
	DirectionSell   = "SELL"
	DirectionTwoWay = "TWO-WAY"
)

// Confidence levels reported by the transcript extractor
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// JSON keys of a trade candidate, in the order they are written for
// candidates built in code
const (
	keyClientName = "clientName"
	keyBondName   = "bondName"
	keyISIN       = "isin"
	keyTicker     = "ticker"
	keySize       = "size"
	keyCurrency   = "currency"
	keyDirection  = "direction"
	keyPrice      = "price"
	keyNotes      = "notes"
	keyConfidence = "confidence"
)

var candidateKeys = []string{
	keyClientName, keyBondName, keyISIN, keyTicker, keySize,
	keyCurrency, keyDirection, keyPrice, keyNotes, keyConfidence,
}

// keys written even when empty on candidates built in code
var requiredKeys = map[string]bool{
	keyClientName: true,
	keyDirection:  true,
	keyNotes:      true,
	keyConfidence: true,
}

// TradeCandidate is one trade activity extracted from a chat transcript.
// Direction, Notes and Confidence may be rewritten by direction validation;
// every other field passes through untouched.
//
// A candidate decoded from JSON remembers the object it came from. Encoding
// it again writes the same keys in the same order with the same values,
// including keys this type does not model, and only re-encodes fields
// whose Go value has changed.
type TradeCandidate struct {
	ClientName string
	BondName   string
	ISIN       string
	Ticker     string
	Size       Amount
	Currency   string
	Direction  string
	Price      Amount
	Notes      string
	Confidence string

	fields []candidateField
}

type candidateField struct {
	key   string
	value json.RawMessage
}

func (c *TradeCandidate) text(key string) *string {
	switch key {
	case keyClientName:
		return &c.ClientName
	case keyBondName:
		return &c.BondName
	case keyISIN:
		return &c.ISIN
	case keyTicker:
		return &c.Ticker
	case keyCurrency:
		return &c.Currency
	case keyDirection:
		return &c.Direction
	case keyNotes:
		return &c.Notes
	case keyConfidence:
		return &c.Confidence
	}
	return nil
}

func (c *TradeCandidate) amount(key string) *Amount {
	switch key {
	case keySize:
		return &c.Size
	case keyPrice:
		return &c.Price
	}
	return nil
}

// rawText reads a JSON string; other values read as empty
func rawText(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return ""
	}
	return s
}

// UnmarshalJSON reads a candidate object. Values of the wrong JSON type
// are kept for re-encoding but read as empty.
func (c *TradeCandidate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("trade candidate must be a JSON object")
	}

	*c = TradeCandidate{fields: []candidateField{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in trade candidate", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		c.fields = append(c.fields, candidateField{key: key, value: value})

		if p := c.text(key); p != nil {
			*p = rawText(value)
		} else if p := c.amount(key); p != nil {
			if err := p.UnmarshalJSON(value); err != nil {
				return err
			}
		}
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON writes the candidate, keeping the layout it was decoded from
func (c TradeCandidate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	n := 0
	write := func(key string, value []byte) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	seen := make(map[string]bool, len(c.fields))
	for _, f := range c.fields {
		seen[f.key] = true
		value, err := c.encodeKnown(f.key, f.value)
		if err != nil {
			return nil, err
		}
		if err := write(f.key, value); err != nil {
			return nil, err
		}
	}

	for _, key := range candidateKeys {
		if seen[key] {
			continue
		}
		value, err := c.encodeMissing(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		if err := write(key, value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeKnown returns the value for a key present in the decoded object:
// the original bytes unless the modelled field has changed since.
func (c *TradeCandidate) encodeKnown(key string, original json.RawMessage) ([]byte, error) {
	if p := c.text(key); p != nil {
		if *p == rawText(original) {
			return original, nil
		}
		return json.Marshal(*p)
	}
	if p := c.amount(key); p != nil {
		return p.MarshalJSON()
	}
	return original, nil
}

// encodeMissing returns the value for a modelled key the decoded object did
// not have, or nil to leave it out.
func (c *TradeCandidate) encodeMissing(key string) ([]byte, error) {
	if p := c.text(key); p != nil {
		if *p == "" && (c.fields != nil || !requiredKeys[key]) {
			return nil, nil
		}
		return json.Marshal(*p)
	}
	if p := c.amount(key); p != nil && !p.IsZero() {
		return p.MarshalJSON()
	}
	return nil, nil
}
