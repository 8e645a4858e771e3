package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/bond-crm-service/internal/config"
)

type fakeModel struct {
	response    string
	err         error
	prompt      string
	hadDeadline bool
}

func (m *fakeModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	_, m.hadDeadline = ctx.Deadline()
	return m.response, m.err
}

func TestExtractor_Extract(t *testing.T) {
	model := &fakeModel{response: "```json\n" + sampleResponse + "\n```"}
	e := NewExtractor(model, "gemini-test", time.Second, nil)

	got, err := e.Extract(context.Background(), "ABC: what's your bid on 10MM Apple 2030s?")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ABC FUND", got[0].ClientName)
	assert.Contains(t, model.prompt, "ABC: what's your bid on 10MM Apple 2030s?")
	assert.True(t, model.hadDeadline)
	assert.Equal(t, "gemini-test", e.Name())
}

func TestExtractor_NoTimeout(t *testing.T) {
	model := &fakeModel{response: "[]"}
	e := NewExtractor(model, "gemini-test", 0, nil)

	got, err := e.Extract(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, model.hadDeadline)
}

func TestExtractor_ModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	e := NewExtractor(model, "gemini-test", time.Second, nil)

	_, err := e.Extract(context.Background(), "hi")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestExtractor_InvalidResponse(t *testing.T) {
	model := &fakeModel{response: "I could not find any trades."}
	e := NewExtractor(model, "gemini-test", time.Second, nil)

	_, err := e.Extract(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNewModel_RequiresAPIKey(t *testing.T) {
	_, err := NewModel(context.Background(), config.GeminiConfig{Model: "gemini-2.0-flash"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
