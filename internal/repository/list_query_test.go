package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewListQueryDefaults(t *testing.T) {
	query := NewListQuery()

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
	assert.NotNil(t, query.Filters)
	assert.Equal(t, 0, query.Offset())
}

func TestListQueryOffset(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		want    int
	}{
		{"first page", 1, 20, 0},
		{"third page", 3, 20, 40},
		{"custom per page", 2, 50, 50},
		{"zero page clamps", 0, 20, 0},
		{"negative page clamps", -1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := &ListQuery{Page: tt.page, PerPage: tt.perPage}
			assert.Equal(t, tt.want, query.Offset())
		})
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: "23505", ConstraintName: "idx_team_project_employee"}

	assert.True(t, isDuplicateKeyError(uniqueViolation, "idx_team_project_employee"))
	assert.False(t, isDuplicateKeyError(uniqueViolation, "idx_estimates_project_version"))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused"), "idx_team_project_employee"))
	assert.False(t, isDuplicateKeyError(nil, "idx_team_project_employee"))
}
