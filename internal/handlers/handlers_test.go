package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"service not found", fmt.Errorf("%w: estimate 9", services.ErrNotFound), http.StatusNotFound},
		{"wrapped gorm not found", fmt.Errorf("failed to load estimate: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: payment amount must be positive", services.ErrValidation), http.StatusUnprocessableEntity},
		{"invalid transition", fmt.Errorf("%w: estimate is Approved", services.ErrInvalidState), http.StatusConflict},
		{"version conflict", repository.ErrVersionConflict, http.StatusConflict},
		{"duplicate assignment", repository.ErrDuplicateAssignment, http.StatusConflict},
		{"bad credentials", services.ErrUnauthorized, http.StatusUnauthorized},
		{"unexpected", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
