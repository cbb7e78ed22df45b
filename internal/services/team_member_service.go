package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type TeamMemberService struct {
	repo         repository.TeamMemberRepository
	employeeRepo repository.EmployeeRepository
	projectRepo  repository.ProjectRepository
}

func NewTeamMemberService(
	repo repository.TeamMemberRepository,
	employeeRepo repository.EmployeeRepository,
	projectRepo repository.ProjectRepository,
) *TeamMemberService {
	return &TeamMemberService{
		repo:         repo,
		employeeRepo: employeeRepo,
		projectRepo:  projectRepo,
	}
}

func (s *TeamMemberService) FindByProject(ctx context.Context, projectID uint) ([]models.TeamMember, error) {
	return s.repo.FindByProject(ctx, projectID)
}

// Assign adds an employee to a project's team. TotalCost is fixed here as
// hourly_rate * estimated_hours; estimates snapshot these rows, so later
// edits to an assignment never reach an existing estimate.
func (s *TeamMemberService) Assign(ctx context.Context, member *models.TeamMember) error {
	if member.HourlyRate <= 0 {
		return fmt.Errorf("%w: hourly_rate must be positive", ErrValidation)
	}
	if member.EstimatedHours <= 0 {
		return fmt.Errorf("%w: estimated_hours must be positive", ErrValidation)
	}

	if _, err := s.projectRepo.FindByID(ctx, member.ProjectID); err != nil {
		return fmt.Errorf("%w: project %d not found", ErrValidation, member.ProjectID)
	}

	employee, err := s.employeeRepo.FindByID(ctx, member.EmployeeID)
	if err != nil {
		return fmt.Errorf("%w: employee %d not found", ErrValidation, member.EmployeeID)
	}

	member.EmployeeName = employee.FullName
	if member.Designation == "" {
		member.Designation = employee.Designation
	}
	member.TotalCost = member.HourlyRate * member.EstimatedHours

	return s.repo.Create(ctx, member)
}

func (s *TeamMemberService) Remove(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
