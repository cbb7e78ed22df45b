package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/jobs"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/internal/services"
	"gorm.io/gorm"
)

// Handlers holds all handler instances
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Client        *ClientHandler
	ProjectStatus *ProjectStatusHandler
	Employee      *EmployeeHandler
	Project       *ProjectHandler
	TeamMember    *TeamMemberHandler
	Milestone     *MilestoneHandler
	Estimate      *EstimateHandler
	Invoice       *InvoiceHandler
	Payment       *PaymentHandler
	Notification  *NotificationHandler
	Analytics     *AnalyticsHandler
	Job           *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(),
		Auth:          NewAuthHandler(svcs.Auth),
		Client:        NewClientHandler(svcs.Client),
		ProjectStatus: NewProjectStatusHandler(svcs.ProjectStatus),
		Employee:      NewEmployeeHandler(svcs.Employee),
		Project:       NewProjectHandler(svcs.Project),
		TeamMember:    NewTeamMemberHandler(svcs.TeamMember),
		Milestone:     NewMilestoneHandler(svcs.Milestone),
		Estimate:      NewEstimateHandler(svcs.Estimate, svcs.Export),
		Invoice:       NewInvoiceHandler(svcs.Invoice, svcs.Export),
		Payment:       NewPaymentHandler(svcs.Payment),
		Notification:  NewNotificationHandler(svcs.Notification),
		Analytics:     NewAnalyticsHandler(svcs.Analytics),
		Job:           NewJobHandler(worker),
	}
}

// respondError maps service and repository errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateAssignment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
