package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", ErrProgressRange, http.StatusBadRequest, "Progress must be between 0 and 100"},
		{"invalid state", ErrAttemptNotInProgress, http.StatusBadRequest, "Exam attempt is not in progress"},
		{"not found", ErrExamNotFound, http.StatusNotFound, "Exam not found"},
		{"unauthorized", ErrNotAttemptOwner, http.StatusUnauthorized, "Not authorized to access this exam attempt"},
		{"unclassified", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
		{"unknown kind", NewError(errors.New("other"), "boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "")
			HandleError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHandleErrorFieldValidation(t *testing.T) {
	c, w := newContext(http.MethodPut, "")
	HandleError(c, ErrProgressRange)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Progress must be between 0 and 100", resp.Message)
	assert.Equal(t, []FieldError{{Field: "progress", Message: "Progress must be between 0 and 100"}}, resp.Errors)

	c, w = newContext(http.MethodPut, "")
	HandleError(c, ErrAttemptNotInProgress)
	assert.Empty(t, decodeResponse(t, w).Errors)
}

func TestBindingError(t *testing.T) {
	type request struct {
		ExamID   string `json:"examId" binding:"required"`
		Progress *int   `json:"progress" binding:"required,gte=0,lte=100"`
	}

	c, w := newContext(http.MethodPost, `{"progress": 150}`)
	var req request
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	BindingError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, []FieldError{
		{Field: "examID", Message: "examID is required"},
		{Field: "progress", Message: "progress must be less than or equal to 100"},
	}, resp.Errors)

	c, w = newContext(http.MethodPost, `{not json`)
	err = c.ShouldBindJSON(&req)
	require.Error(t, err)
	BindingError(c, err)

	resp = decodeResponse(t, w)
	assert.Equal(t, "Invalid request body", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Field)
}

func TestAppErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrAlreadyEnrolled, ErrValidation)
	assert.ErrorIs(t, ErrExamNotPublished, ErrInvalidState)
	assert.NotErrorIs(t, ErrExamNotPublished, ErrValidation)
	assert.Equal(t, "Exam is not published", ErrExamNotPublished.Error())
}
