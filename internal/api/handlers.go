package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/trogers1052/bond-crm-service/internal/analyzer"
	"github.com/trogers1052/bond-crm-service/internal/database"
	"github.com/trogers1052/bond-crm-service/internal/direction"
	"github.com/trogers1052/bond-crm-service/internal/gemini"
	"github.com/trogers1052/bond-crm-service/internal/models"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// AnalysisService analyzes and validates transcripts
type AnalysisService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Analysis, error)
	Validate(req models.ValidateRequest) models.ValidationResult
	Classifier() *direction.Classifier
	ExtractorName() string
}

// AnalysisRepository reads analyses and corrections
type AnalysisRepository interface {
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, limit int, since *time.Time) ([]*models.Analysis, error)
	ListCorrections(ctx context.Context, f database.CorrectionFilter) ([]models.DirectionCorrection, error)
	ReviewCorrection(ctx context.Context, id int, status string) error
	GetCorrectionSummary(ctx context.Context) (*models.CorrectionSummary, error)
	Ping() error
}

// CachePinger reports cache health
type CachePinger interface {
	Ping(ctx context.Context) error
}

// ConsumerStatus reports whether the transcript consumer loop is running
type ConsumerStatus interface {
	Running() bool
}

// Dependencies wires a Handler. Only Service is required; a nil Consumer
// means the transcript topic is not consumed.
type Dependencies struct {
	Service    AnalysisService
	Repo       AnalysisRepository
	Cache      CachePinger
	Consumer   ConsumerStatus
	Publishing bool
	Logger     *zap.Logger
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service    AnalysisService
	repo       AnalysisRepository
	cache      CachePinger
	consumer   ConsumerStatus
	publishing bool
	logger     *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(deps Dependencies) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handler{
		service:    deps.Service,
		repo:       deps.Repo,
		cache:      deps.Cache,
		consumer:   deps.Consumer,
		publishing: deps.Publishing,
		logger:     deps.Logger,
	}
}

// AnalyzeTranscript handles POST /transcripts/analyze
func (h *Handler) AnalyzeTranscript(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.respondAnalyzeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

func (h *Handler) respondAnalyzeError(w http.ResponseWriter, err error) {
	var respErr *gemini.ResponseError
	switch {
	case errors.Is(err, analyzer.ErrEmptyTranscript):
		respondError(w, http.StatusBadRequest, "Missing or invalid transcript")
	case errors.Is(err, analyzer.ErrExtractorUnavailable), errors.Is(err, gemini.ErrNotConfigured):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &respErr):
		h.logger.Warn("Extractor returned invalid JSON", zap.String("raw", respErr.Raw))
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": "AI returned invalid JSON",
			"raw":   respErr.Raw,
		})
	default:
		h.logger.Error("Transcript analysis failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// ValidateTranscript handles POST /transcripts/validate
func (h *Handler) ValidateTranscript(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Activities == nil {
		req.Activities = []models.TradeCandidate{}
	}

	respondJSON(w, http.StatusOK, h.service.Validate(req))
}

type classifyRequest struct {
	Text       string `json:"text"`
	ClientName string `json:"clientName"`
}

type classifyResponse struct {
	Direction direction.Direction `json:"direction"`
	Rule      string              `json:"rule,omitempty"`
	Context   string              `json:"context"`
}

// ClassifyDirection handles POST /directions/classify
func (h *Handler) ClassifyDirection(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slice := direction.ExtractContext(req.Text, req.ClientName)
	d, rule := h.service.Classifier().Explain(slice)

	respondJSON(w, http.StatusOK, classifyResponse{Direction: d, Rule: rule, Context: slice})
}

// ListAnalyses handles GET /analyses
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var since *time.Time
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := parseSince(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid since date: use RFC3339 or YYYY-MM-DD")
			return
		}
		since = &t
	}

	analyses, err := h.repo.ListAnalyses(r.Context(), limit, since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, analyses)
}

// GetAnalysis handles GET /analyses/{id}
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	id := mux.Vars(r)["id"]
	analysis, err := h.repo.GetAnalysis(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// ListCorrections handles GET /corrections
func (h *Handler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	corrections, err := h.repo.ListCorrections(r.Context(), database.CorrectionFilter{
		Limit:      limit,
		Status:     q.Get("status"),
		ClientName: q.Get("client"),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, corrections)
}

// ReviewCorrection handles POST /corrections/{id}/review
func (h *Handler) ReviewCorrection(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid correction id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status != models.ReviewAccepted && req.Status != models.ReviewRejected {
		respondError(w, http.StatusBadRequest, "status must be 'accepted' or 'rejected'")
		return
	}

	err = h.repo.ReviewCorrection(r.Context(), id, req.Status)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":            id,
		"review_status": req.Status,
	})
}

// GetCorrectionSummary handles GET /corrections/summary
func (h *Handler) GetCorrectionSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}

	summary, err := h.repo.GetCorrectionSummary(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Component states reported by the health check
const (
	stateUp            = "up"
	stateEnabled       = "enabled"
	stateDown          = "down"
	stateDisabled      = "disabled"
	stateNotConfigured = "not configured"
)

type healthReport struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Extractor  string            `json:"extractor"`
	Components map[string]string `json:"components"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// HealthCheck handles GET /health. A missing database makes the service
// unhealthy (503); any other component that is down or absent only
// degrades it.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := healthReport{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Extractor:  h.service.ExtractorName(),
		Components: map[string]string{},
		Errors:     map[string]string{},
	}
	degrade := func() {
		if report.Status == "healthy" {
			report.Status = "degraded"
		}
	}

	switch {
	case h.repo == nil:
		report.Components["postgres"] = stateNotConfigured
		report.Status = "unhealthy"
	default:
		if err := h.repo.Ping(); err != nil {
			report.Components["postgres"] = stateDown
			report.Errors["postgres"] = err.Error()
			report.Status = "unhealthy"
		} else {
			report.Components["postgres"] = stateUp
		}
	}

	switch {
	case h.cache == nil:
		report.Components["redis"] = stateNotConfigured
	default:
		if err := h.cache.Ping(ctx); err != nil {
			report.Components["redis"] = stateDown
			report.Errors["redis"] = err.Error()
			degrade()
		} else {
			report.Components["redis"] = stateUp
		}
	}

	if report.Extractor == "" {
		degrade()
	}

	report.Components["kafka_producer"] = stateDisabled
	if h.publishing {
		report.Components["kafka_producer"] = stateEnabled
	}

	switch {
	case h.consumer == nil:
		report.Components["kafka_consumer"] = stateDisabled
	case h.consumer.Running():
		report.Components["kafka_consumer"] = stateUp
	default:
		report.Components["kafka_consumer"] = stateDown
		degrade()
	}

	status := http.StatusOK
	if report.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, report)
}

func (h *Handler) requireRepo(w http.ResponseWriter) bool {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "database not configured")
		return false
	}
	return true
}

func parseLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
