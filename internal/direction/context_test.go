package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContext(t *testing.T) {
	multi := "Paul: morning\nBosera: Bosera bid 10mm\nPaul: @ 100\nEFund: what's your bid?\nPaul: 99"

	tests := []struct {
		name       string
		transcript string
		client     string
		want       string
	}{
		{
			name:       "empty client returns full transcript",
			transcript: multi,
			client:     "",
			want:       multi,
		},
		{
			name:       "all lines relevant",
			transcript: "Bosera: Bosera bid 10mm DKS 52\nPaul: @ 100\nBosera: Done",
			client:     "Bosera",
			want:       "Bosera: Bosera bid 10mm DKS 52\nPaul: @ 100\nBosera: Done",
		},
		{
			name:       "case-insensitive with dealer reply",
			transcript: multi,
			client:     "BOSERA",
			want:       "Bosera: Bosera bid 10mm\nPaul: @ 100",
		},
		{
			name:       "second client",
			transcript: multi,
			client:     "EFUND",
			want:       "EFund: what's your bid?\nPaul: 99",
		},
		{
			name:       "name not found falls back to full transcript",
			transcript: multi,
			client:     "VANGUARD",
			want:       multi,
		},
		{
			name:       "repeated reply lines are selected by position",
			transcript: "Paul: done\nBosera: bid 5\nPaul: done",
			client:     "bosera",
			want:       "Bosera: bid 5\nPaul: done",
		},
		{
			name:       "short names over-match",
			transcript: "Paul: hi\nA: what's your bid\nDesk: 99",
			client:     "a",
			want:       "Paul: hi\nA: what's your bid\nDesk: 99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContext(tt.transcript, tt.client))
		})
	}
}
