package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

func TestObserveValidation(t *testing.T) {
	m := New()

	m.ObserveValidation(models.ValidationResult{
		Activities: make([]models.TradeCandidate, 3),
		Corrections: []models.DirectionCorrection{
			{OriginalDirection: "BUY", CorrectedDirection: "SELL", Rule: "asking_bid"},
			{OriginalDirection: "", CorrectedDirection: "TWO-WAY", Rule: "two_way"},
		},
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.candidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.overrides.WithLabelValues("BUY", "SELL", "asking_bid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.overrides.WithLabelValues("NONE", "TWO-WAY", "two_way")))
}

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis(StatusSuccess)
	m.ObserveAnalysis(StatusSuccess)
	m.ObserveAnalysis(StatusFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues(StatusFailed)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveExtraction(1500 * time.Millisecond)
	m.ObserveAnalysis(StatusCached)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bondcrm_extraction_duration_seconds_count 1")
	assert.Contains(t, rec.Body.String(), `bondcrm_transcript_analyses_total{status="cached"} 1`)
}
