// Package analyzer runs a transcript through the extraction model and the
// direction validator, and records the outcome.
package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trogers1052/bond-crm-service/internal/direction"
	"github.com/trogers1052/bond-crm-service/internal/metrics"
	"github.com/trogers1052/bond-crm-service/internal/models"
	"github.com/trogers1052/bond-crm-service/internal/redis"
	"go.uber.org/zap"
)

var (
	// ErrEmptyTranscript is returned for a blank transcript
	ErrEmptyTranscript = errors.New("missing or invalid transcript")

	// ErrExtractorUnavailable is returned when no extraction model is configured
	ErrExtractorUnavailable = errors.New("transcript extractor unavailable")
)

// Extractor proposes trade candidates for a transcript
type Extractor interface {
	Extract(ctx context.Context, transcript string) ([]models.TradeCandidate, error)
	Name() string
}

// Store persists analyses
type Store interface {
	SaveAnalysis(ctx context.Context, a *models.Analysis) error
}

// Cache holds recent analyses keyed by transcript hash
type Cache interface {
	GetAnalysis(ctx context.Context, transcriptHash string) (*models.Analysis, error)
	SetAnalysis(ctx context.Context, a *models.Analysis, ttl time.Duration) error
}

// Publisher announces finished analyses
type Publisher interface {
	PublishActivities(ctx context.Context, a *models.Analysis) error
}

// Options wires the optional collaborators of a Service. Nil members are
// skipped, except Extractor which Analyze requires.
type Options struct {
	Extractor Extractor
	Store     Store
	Cache     Cache
	Publisher Publisher
	Metrics   *metrics.Metrics
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

// Service analyzes transcripts
type Service struct {
	validator *direction.Validator
	extractor Extractor
	store     Store
	cache     Cache
	publisher Publisher
	metrics   *metrics.Metrics
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Service around validator
func New(validator *direction.Validator, opts Options) *Service {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		validator: validator,
		extractor: opts.Extractor,
		store:     opts.Store,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		cacheTTL:  opts.CacheTTL,
		logger:    opts.Logger,
		now:       time.Now,
	}
}

// Classifier exposes the validator's rule table
func (s *Service) Classifier() *direction.Classifier {
	return s.validator.Classifier()
}

// ExtractorName names the extraction model, or returns "" when none is
// configured
func (s *Service) ExtractorName() string {
	if s.extractor == nil {
		return ""
	}
	return s.extractor.Name()
}

// HashTranscript returns the hex SHA-256 of a transcript
func HashTranscript(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:])
}

// Analyze extracts and validates the trade activities of a transcript.
// A cached analysis of the same transcript is returned unless Refresh is set.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	hash := HashTranscript(req.Transcript)

	if s.cache != nil && !req.Refresh {
		cached, err := s.cache.GetAnalysis(ctx, hash)
		if err == nil {
			cached.Cached = true
			s.metrics.ObserveAnalysis(metrics.StatusCached)
			s.logger.Debug("Serving cached analysis",
				zap.String("analysis_id", cached.ID),
				zap.String("transcript_hash", hash))
			return cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("Analysis cache lookup failed", zap.Error(err))
		}
	}

	if s.extractor == nil {
		s.metrics.ObserveAnalysis(metrics.StatusFailed)
		return nil, ErrExtractorUnavailable
	}

	start := time.Now()
	candidates, err := s.extractor.Extract(ctx, req.Transcript)
	s.metrics.ObserveExtraction(time.Since(start))
	if err != nil {
		s.metrics.ObserveAnalysis(metrics.StatusFailed)
		return nil, fmt.Errorf("failed to extract activities: %w", err)
	}

	result := s.validate(req.Transcript, candidates)

	a := &models.Analysis{
		ID:             uuid.NewString(),
		TranscriptHash: hash,
		Source:         req.Source,
		Transcript:     req.Transcript,
		Model:          s.extractor.Name(),
		Activities:     result.Activities,
		Corrections:    result.Corrections,
		CreatedAt:      s.now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(ctx, a); err != nil {
			s.metrics.ObserveAnalysis(metrics.StatusFailed)
			return nil, fmt.Errorf("failed to save analysis: %w", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetAnalysis(ctx, a, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache analysis", zap.String("analysis_id", a.ID), zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishActivities(ctx, a); err != nil {
			s.logger.Warn("Failed to publish activities", zap.String("analysis_id", a.ID), zap.Error(err))
		}
	}

	s.metrics.ObserveAnalysis(metrics.StatusSuccess)
	s.logger.Info("Transcript analyzed",
		zap.String("analysis_id", a.ID),
		zap.String("source", a.Source),
		zap.Int("activities", len(a.Activities)),
		zap.Int("corrections", len(a.Corrections)))

	return a, nil
}

// Validate checks candidates that were extracted elsewhere. No model call
// is made and nothing is persisted.
func (s *Service) Validate(req models.ValidateRequest) models.ValidationResult {
	return s.validate(req.Transcript, req.Activities)
}

func (s *Service) validate(transcript string, candidates []models.TradeCandidate) models.ValidationResult {
	result := s.validator.Validate(transcript, candidates)
	s.metrics.ObserveValidation(result)

	for _, c := range result.Corrections {
		s.logger.Info("Direction auto-corrected",
			zap.Int("candidate_index", c.CandidateIndex),
			zap.String("client", c.ClientName),
			zap.String("from", c.OriginalDirection),
			zap.String("to", c.CorrectedDirection),
			zap.String("rule", c.Rule))
	}
	return result
}
