package repository

import (
	"context"
	"errors"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when two estimate versions are created for
// the same project at the same moment
var ErrVersionConflict = errors.New("estimate version conflict, retry the operation")

// EstimateRepository defines the interface for estimate data access.
// Estimates are append-only: there is no Update or Delete. Status changes go
// through UpdateStatus, which only touches the status and comment columns.
type EstimateRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Estimate, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Estimate, error)
	CreateVersion(ctx context.Context, estimate *models.Estimate) error
	UpdateStatus(ctx context.Context, estimate *models.Estimate) error
	List(ctx context.Context, query *ListQuery) ([]models.Estimate, int64, error)
}

type estimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) FindByID(ctx context.Context, id uint) (*models.Estimate, error) {
	var estimate models.Estimate
	err := r.db.WithContext(ctx).
		Preload("LaborItems").
		Preload("CostItems").
		Joins("Project").
		First(&estimate, id).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (r *estimateRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Estimate, error) {
	var estimates []models.Estimate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("LaborItems").
		Preload("CostItems").
		Order("version DESC").
		Find(&estimates).Error
	return estimates, err
}

// CreateVersion assigns version = max(version)+1 for the project and inserts
// the estimate with its line items in one transaction. The unique index on
// (project_id, version) turns a concurrent create into ErrVersionConflict
// instead of two rows sharing a version number.
func (r *estimateRepository) CreateVersion(ctx context.Context, estimate *models.Estimate) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.Estimate{}).
			Where("project_id = ?", estimate.ProjectID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		estimate.Version = maxVersion + 1
		return tx.Create(estimate).Error
	})
	if err != nil {
		if isDuplicateKeyError(err, "idx_estimates_project_version") {
			return ErrVersionConflict
		}
		return err
	}
	return nil
}

func (r *estimateRepository) UpdateStatus(ctx context.Context, estimate *models.Estimate) error {
	return r.db.WithContext(ctx).
		Model(estimate).
		Select("Status", "ChangeComment").
		Updates(estimate).Error
}

func (r *estimateRepository) List(ctx context.Context, query *ListQuery) ([]models.Estimate, int64, error) {
	var estimates []models.Estimate
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Estimate{})

	if status := query.Filters["status"]; status != "" {
		db = db.Where("estimates.status = ?", status)
	}
	if projectID := query.Filters["project_id"]; projectID != "" {
		db = db.Where("estimates.project_id = ?", projectID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Joins("Project").
		Order("estimates.created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&estimates).Error
	return estimates, total, err
}
