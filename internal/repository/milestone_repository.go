package repository

import (
	"context"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// MilestoneRepository defines the interface for milestone data access
type MilestoneRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Milestone, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Milestone, error)
	Create(ctx context.Context, milestone *models.Milestone) error
	Update(ctx context.Context, milestone *models.Milestone) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) FindByID(ctx context.Context, id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	err := r.db.WithContext(ctx).First(&milestone, id).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("planned_date ASC").
		Find(&milestones).Error
	return milestones, err
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *models.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepository) Update(ctx context.Context, milestone *models.Milestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

func (r *milestoneRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Milestone{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *milestoneRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Milestone{}, id).Error
}
