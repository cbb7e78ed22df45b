package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type MilestoneService struct {
	repo        repository.MilestoneRepository
	projectRepo repository.ProjectRepository
}

func NewMilestoneService(
	repo repository.MilestoneRepository,
	projectRepo repository.ProjectRepository,
) *MilestoneService {
	return &MilestoneService{
		repo:        repo,
		projectRepo: projectRepo,
	}
}

func (s *MilestoneService) FindByID(ctx context.Context, id uint) (*models.Milestone, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MilestoneService) FindByProject(ctx context.Context, projectID uint) ([]models.Milestone, error) {
	return s.repo.FindByProject(ctx, projectID)
}

func (s *MilestoneService) Create(ctx context.Context, milestone *models.Milestone) error {
	if milestone.MilestoneName == "" {
		return fmt.Errorf("%w: milestone_name is required", ErrValidation)
	}
	if milestone.PaymentPercentage < 0 {
		return fmt.Errorf("%w: payment_percentage cannot be negative", ErrValidation)
	}

	project, err := s.projectRepo.FindByID(ctx, milestone.ProjectID)
	if err != nil {
		return fmt.Errorf("%w: project %d not found", ErrValidation, milestone.ProjectID)
	}

	// Derive the amount from the project's billing amount when the caller
	// only supplies a percentage
	if milestone.Amount == 0 && milestone.PaymentPercentage > 0 && project.FinalBillingAmount > 0 {
		milestone.Amount = project.FinalBillingAmount * milestone.PaymentPercentage / 100
	}

	if milestone.Status == "" {
		milestone.Status = models.MilestoneStatusPending
	}

	return s.repo.Create(ctx, milestone)
}

func (s *MilestoneService) Update(ctx context.Context, milestone *models.Milestone) error {
	if milestone.MilestoneName == "" {
		return fmt.Errorf("%w: milestone_name is required", ErrValidation)
	}
	return s.repo.Update(ctx, milestone)
}

// UpdateStatus sets a milestone's status from a staff action. Completion via
// invoice payment goes through PaymentService instead.
func (s *MilestoneService) UpdateStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case models.MilestoneStatusPending, models.MilestoneStatusInProgress, models.MilestoneStatusCompleted:
	default:
		return fmt.Errorf("%w: unknown milestone status %q", ErrValidation, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *MilestoneService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
