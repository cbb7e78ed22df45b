package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type ProjectStatusService struct {
	repo repository.ProjectStatusRepository
}

func NewProjectStatusService(repo repository.ProjectStatusRepository) *ProjectStatusService {
	return &ProjectStatusService{repo: repo}
}

func (s *ProjectStatusService) FindAll(ctx context.Context) ([]models.ProjectStatus, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProjectStatusService) Create(ctx context.Context, status *models.ProjectStatus) error {
	if status.StatusName == "" {
		return fmt.Errorf("%w: status_name is required", ErrValidation)
	}
	return s.repo.Create(ctx, status)
}

func (s *ProjectStatusService) Update(ctx context.Context, status *models.ProjectStatus) error {
	if status.StatusName == "" {
		return fmt.Errorf("%w: status_name is required", ErrValidation)
	}
	return s.repo.Update(ctx, status)
}

func (s *ProjectStatusService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
