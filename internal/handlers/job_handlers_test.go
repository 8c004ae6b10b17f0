package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubJobStatusProvider struct {
	status map[string]interface{}
}

func (s *stubJobStatusProvider) GetJobStatus() map[string]interface{} { return s.status }

func TestJobStatus(t *testing.T) {
	provider := &stubJobStatusProvider{status: map[string]interface{}{
		"total_jobs": 2,
		"jobs":       []string{"reminder-scan", "token-cleanup"},
	}}
	h := NewJobHandlers(nil, provider)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/jobs", nil)
	rec := httptest.NewRecorder()

	err := h.JobStatus(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(2), got["total_jobs"])
	assert.ElementsMatch(t, []interface{}{"reminder-scan", "token-cleanup"}, got["jobs"])
}
