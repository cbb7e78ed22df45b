package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type ClientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, query *repository.ListQuery) ([]models.Client, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ClientService) Create(ctx context.Context, client *models.Client) error {
	if client.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required", ErrValidation)
	}
	if client.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return s.repo.Create(ctx, client)
}

func (s *ClientService) Update(ctx context.Context, client *models.Client) error {
	if client.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required", ErrValidation)
	}
	return s.repo.Update(ctx, client)
}

func (s *ClientService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
