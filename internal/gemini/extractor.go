package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/trogers1052/bond-crm-service/internal/config"
	"github.com/trogers1052/bond-crm-service/internal/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Model generates text for a prompt
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// genaiModel calls the Gemini API through the genai SDK
type genaiModel struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewModel creates a Gemini-backed Model from configuration
func NewModel(ctx context.Context, cfg config.GeminiConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &genaiModel{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(cfg.Temperature),
			TopP:        genai.Ptr(cfg.TopP),
			TopK:        genai.Ptr(cfg.TopK),
		},
	}, nil
}

func (m *genaiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), m.config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return result.Text(), nil
}

// Extractor turns a transcript into trade candidates using a language model.
// Output for the same transcript may differ between calls.
type Extractor struct {
	model     Model
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExtractor creates an Extractor over model
func NewExtractor(model Model, modelName string, timeout time.Duration, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		model:     model,
		modelName: modelName,
		timeout:   timeout,
		logger:    logger,
	}
}

// Name returns the model identifier recorded on analyses
func (e *Extractor) Name() string {
	return e.modelName
}

// Extract asks the model for the trade activities in transcript
func (e *Extractor) Extract(ctx context.Context, transcript string) ([]models.TradeCandidate, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := e.model.GenerateText(ctx, BuildPrompt(transcript))
	if err != nil {
		return nil, err
	}

	candidates, err := ParseCandidates(text)
	if err != nil {
		e.logger.Warn("Failed to parse model response",
			zap.String("model", e.modelName),
			zap.String("raw", text),
			zap.Error(err))
		return nil, err
	}

	e.logger.Debug("Extracted trade candidates",
		zap.String("model", e.modelName),
		zap.Int("count", len(candidates)),
		zap.Duration("elapsed", time.Since(start)))
	return candidates, nil
}
