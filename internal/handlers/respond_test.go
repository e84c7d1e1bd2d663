package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dconn.dev/internal/middleware"
)

func TestRespondJSONLogsEncodeFailureWithRequestID(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	var r *http.Request
	middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
		r = req
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.NotNil(t, r)

	w := httptest.NewRecorder()
	respondJSON(w, r, log, http.StatusOK, map[string]any{"bad": make(chan int)})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "encoding JSON", entry.Message)
	assert.Equal(t, middleware.GetRequestID(r.Context()), entry.Data["request_id"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestRespondError(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	w := httptest.NewRecorder()

	respondError(w, httptest.NewRequest(http.MethodGet, "/", nil), log, http.StatusNotFound, "Project not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
	assert.Empty(t, hook.AllEntries())
}
