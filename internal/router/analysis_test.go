package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptlab/insight-api/internal/models"
	"github.com/perceptlab/insight-api/internal/utils"
)

type noopService struct{}

func (noopService) ProcessAudio(ctx context.Context, req models.TranscribeAudioRequest) (*models.TranscriptionResult, error) {
	return &models.TranscriptionResult{}, nil
}

func (noopService) DescribeImage(ctx context.Context, imageB64 string) (string, error) {
	return "", nil
}

func (noopService) SummarizeContent(ctx context.Context, req models.SummarizeRequest) (string, error) {
	return "", nil
}

func (noopService) SummarizeUpload(ctx context.Context, fileBytes []byte, contentType string) (string, error) {
	return "", nil
}

func newTestRouter() http.Handler {
	return NewRouter(noopService{}, utils.NewLoggerWithWriter(io.Discard, "error"), 1<<20)
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestPreflightAnsweredWithCORSHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/summarize", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type",
		rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSHeadersOnRegularResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(`{"text":"x"}`))
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDAssigned(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
