package repository

import (
	"context"
	"errors"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateAssignment is returned when an employee is already assigned to
// the project
var ErrDuplicateAssignment = errors.New("employee is already assigned to this project")

// TeamMemberRepository defines the interface for team assignment data access
type TeamMemberRepository interface {
	FindByID(ctx context.Context, id uint) (*models.TeamMember, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uint) error
}

type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) FindByID(ctx context.Context, id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepository) FindByProject(ctx context.Context, projectID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Joins("Employee").
		Order("team_members.created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *teamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isDuplicateKeyError(err, "idx_team_project_employee") {
			return ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

func (r *teamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *teamMemberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeamMember{}, id).Error
}
