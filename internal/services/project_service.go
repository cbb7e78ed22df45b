package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type ProjectService struct {
	repo       repository.ProjectRepository
	clientRepo repository.ClientRepository
	statusRepo repository.ProjectStatusRepository
}

func NewProjectService(
	repo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	statusRepo repository.ProjectStatusRepository,
) *ProjectService {
	return &ProjectService{
		repo:       repo,
		clientRepo: clientRepo,
		statusRepo: statusRepo,
	}
}

func (s *ProjectService) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	if project.ProjectName == "" {
		return fmt.Errorf("%w: project_name is required", ErrValidation)
	}
	if project.ProjectCode == "" {
		return fmt.Errorf("%w: project_code is required", ErrValidation)
	}
	if project.PaymentTerms < 0 {
		return fmt.Errorf("%w: payment_terms cannot be negative", ErrValidation)
	}

	// The owning client must exist
	if _, err := s.clientRepo.FindByID(ctx, project.ClientID); err != nil {
		return fmt.Errorf("%w: client %d not found", ErrValidation, project.ClientID)
	}
	if project.ProjectStatusID != 0 {
		if _, err := s.statusRepo.FindByID(ctx, project.ProjectStatusID); err != nil {
			return fmt.Errorf("%w: project status %d not found", ErrValidation, project.ProjectStatusID)
		}
	}

	return s.repo.Create(ctx, project)
}

func (s *ProjectService) Update(ctx context.Context, project *models.Project) error {
	if project.PaymentTerms < 0 {
		return fmt.Errorf("%w: payment_terms cannot be negative", ErrValidation)
	}
	return s.repo.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
