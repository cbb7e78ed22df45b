package repository

import (
	"context"
	"errors"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// ProjectStatusRepository defines the interface for project status data access
type ProjectStatusRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ProjectStatus, error)
	Create(ctx context.Context, status *models.ProjectStatus) error
	Update(ctx context.Context, status *models.ProjectStatus) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.ProjectStatus, error)
}

type projectStatusRepository struct {
	db *gorm.DB
}

// NewProjectStatusRepository creates a new project status repository
func NewProjectStatusRepository(db *gorm.DB) ProjectStatusRepository {
	return &projectStatusRepository{db: db}
}

func (r *projectStatusRepository) FindByID(ctx context.Context, id uint) (*models.ProjectStatus, error) {
	var status models.ProjectStatus
	err := r.db.WithContext(ctx).First(&status, id).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *projectStatusRepository) Create(ctx context.Context, status *models.ProjectStatus) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		if isDuplicateKeyError(err, "idx_project_statuses_status_name") {
			return errors.New("a status with this name already exists")
		}
		return err
	}
	return nil
}

func (r *projectStatusRepository) Update(ctx context.Context, status *models.ProjectStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *projectStatusRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProjectStatus{}, id).Error
}

func (r *projectStatusRepository) FindAll(ctx context.Context) ([]models.ProjectStatus, error) {
	var statuses []models.ProjectStatus
	err := r.db.WithContext(ctx).
		Order("display_order ASC, status_name ASC").
		Find(&statuses).Error
	return statuses, err
}
