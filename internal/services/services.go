package services

import (
	"github.com/projectdesk/projectdesk-api/internal/cache"
	"github.com/projectdesk/projectdesk-api/internal/config"
	"github.com/projectdesk/projectdesk-api/internal/jobs"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth          *AuthService
	Client        *ClientService
	ProjectStatus *ProjectStatusService
	Project       *ProjectService
	Employee      *EmployeeService
	TeamMember    *TeamMemberService
	Milestone     *MilestoneService
	Estimate      *EstimateService
	Invoice       *InvoiceService
	Payment       *PaymentService
	Notification  *NotificationService
	Analytics     *AnalyticsService
	Export        *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *cache.Cache, cfg *config.Config) *Services {
	notificationSvc := NewNotificationService(repos.Notification)
	analyticsSvc := NewAnalyticsService(repos.Analytics, store)

	return &Services{
		Auth:          NewAuthService(cfg),
		Client:        NewClientService(repos.Client),
		ProjectStatus: NewProjectStatusService(repos.ProjectStatus),
		Project:       NewProjectService(repos.Project, repos.Client, repos.ProjectStatus),
		Employee:      NewEmployeeService(repos.Employee),
		TeamMember:    NewTeamMemberService(repos.TeamMember, repos.Employee, repos.Project),
		Milestone:     NewMilestoneService(repos.Milestone, repos.Project),
		Estimate:      NewEstimateService(repos.Estimate, repos.Project, repos.TeamMember, notificationSvc, worker),
		Invoice:       NewInvoiceService(repos.Invoice, repos.Project, repos.Milestone, notificationSvc, analyticsSvc, worker),
		Payment:       NewPaymentService(repos.Payment, repos.Invoice, repos.Milestone, notificationSvc, analyticsSvc, worker),
		Notification:  notificationSvc,
		Analytics:     analyticsSvc,
		Export:        NewExportService(repos.Invoice, repos.Estimate),
	}
}
