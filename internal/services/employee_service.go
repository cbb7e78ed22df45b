package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type EmployeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (s *EmployeeService) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *EmployeeService) FindAll(ctx context.Context) ([]models.Employee, error) {
	return s.repo.FindAll(ctx)
}

func (s *EmployeeService) Create(ctx context.Context, employee *models.Employee) error {
	if employee.FullName == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	return s.repo.Create(ctx, employee)
}

func (s *EmployeeService) Update(ctx context.Context, employee *models.Employee) error {
	if employee.FullName == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	return s.repo.Update(ctx, employee)
}

func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
