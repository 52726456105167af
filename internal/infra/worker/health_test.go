package worker

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLivenessAlwaysOK(t *testing.T) {
	server := NewObsServer(9091, discardLogger())

	rec := httptest.NewRecorder()
	server.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadinessFollowsState(t *testing.T) {
	server := NewObsServer(9091, discardLogger())

	rec := httptest.NewRecorder()
	server.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	server.SetReady(true)
	rec = httptest.NewRecorder()
	server.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	server.SetReady(false)
	rec = httptest.NewRecorder()
	server.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
