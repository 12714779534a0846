package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shiftdesk/services/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: errs.NewValidation("name", "is required"), expected: http.StatusBadRequest},
		{name: "not found", err: &errs.NotFoundError{Resource: "employee", ID: "1"}, expected: http.StatusNotFound},
		{name: "precondition", err: &errs.PreconditionError{Message: "no demand"}, expected: http.StatusConflict},
		{name: "superseded", err: fmt.Errorf("generate: %w", errs.ErrSuperseded), expected: http.StatusConflict},
		{name: "remote", err: &errs.RemoteError{Op: "solve", Status: 500}, expected: http.StatusBadGateway},
		{name: "malformed", err: &errs.MalformedResponseError{Op: "solve", Err: errors.New("eof")}, expected: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusForError(tc.err))
		})
	}
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, "failed to save demand", errs.NewValidation("slots[0].hour", "invalid"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"failed to save demand","details":"validation: slots[0].hour: invalid"}`, w.Body.String())
}
