package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.errors = append(l.errors, msg)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"missing field", NewMissingFieldError("missing", "product"), http.StatusBadRequest},
		{"invalid value", NewInvalidValueError("quantity", "bad"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("submit: %w", NewInvalidValueError("quantity", "bad")), http.StatusBadRequest},
		{"storage", NewStorageFailedError("append", stderrors.New("conn reset")), http.StatusInternalServerError},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalDetails(t *testing.T) {
	assert.Equal(t, "Quantity must be greater than 0", PublicMessage(NewInvalidValueError("quantity", "Quantity must be greater than 0")))
	assert.Equal(t, InternalErrorMessage, PublicMessage(NewStorageFailedError("append", stderrors.New("password=secret"))))
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewNotificationSendFailedError("smtp", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, err.Retryable)
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(err.Code))
}

func TestErrorHandler_HandleHTTPError(t *testing.T) {
	t.Run("validation is a warning", func(t *testing.T) {
		log := &recordingLogger{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/requirements", nil)

		NewErrorHandler(log).HandleHTTPError(rec, req, NewMissingFieldError("Missing required fields", "product"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Missing required fields", body["message"])
		assert.Len(t, log.warns, 1)
		assert.Empty(t, log.errors)
	})

	t.Run("unexpected errors stay server side", func(t *testing.T) {
		log := &recordingLogger{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/requirements", nil)

		NewErrorHandler(log).HandleHTTPError(rec, req, stderrors.New("nil pointer somewhere"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), InternalErrorMessage)
		assert.NotContains(t, rec.Body.String(), "nil pointer")
		assert.Len(t, log.errors, 1)
	})
}
