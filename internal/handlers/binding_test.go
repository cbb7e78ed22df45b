package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "invoice",
			body:     `{"invoice": {"name": "Phase 1", "amount": 10000}}`,
			expected: bindTarget{Name: "Phase 1", Amount: 10000},
		},
		{
			name:     "Flat Structure",
			key:      "invoice",
			body:     `{"name": "Phase 2", "amount": 2500.50}`,
			expected: bindTarget{Name: "Phase 2", Amount: 2500.50},
		},
		{
			name:     "Missing Key Falls Back To Flat",
			key:      "invoice",
			body:     `{"other": "x", "name": "Phase 3", "amount": 100}`,
			expected: bindTarget{Name: "Phase 3", Amount: 100},
		},
		{
			name:        "Invalid Field Type",
			key:         "invoice",
			body:        `{"name": "Phase 4", "amount": "not-a-number"}`,
			expectError: true,
		},
		{
			name:        "Nested Key With Invalid Content",
			key:         "invoice",
			body:        `{"invoice": "just a string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
