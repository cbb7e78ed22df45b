package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Client        ClientRepository
	ProjectStatus ProjectStatusRepository
	Project       ProjectRepository
	Employee      EmployeeRepository
	TeamMember    TeamMemberRepository
	Milestone     MilestoneRepository
	Estimate      EstimateRepository
	Invoice       InvoiceRepository
	Payment       PaymentRepository
	Notification  NotificationRepository
	Analytics     AnalyticsRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Client:        NewClientRepository(db),
		ProjectStatus: NewProjectStatusRepository(db),
		Project:       NewProjectRepository(db),
		Employee:      NewEmployeeRepository(db),
		TeamMember:    NewTeamMemberRepository(db),
		Milestone:     NewMilestoneRepository(db),
		Estimate:      NewEstimateRepository(db),
		Invoice:       NewInvoiceRepository(db),
		Payment:       NewPaymentRepository(db),
		Notification:  NewNotificationRepository(db),
		Analytics:     NewAnalyticsRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// isDuplicateKeyError reports whether err is a unique violation on the given
// constraint
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}
