package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigram/internal/handler/http/requestid"
)

func testRouter() http.Handler {
	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRouter_Hello(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":0,"message":"hello, world"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.RequestIDHeader))
}

func TestRouter_PostSubmissionAcknowledged(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"draft"}`))
	testRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":0,"message":"Received."}`, rec.Body.String())
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.RequestIDHeader, "fixed-id")
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get(requestid.RequestIDHeader))
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
