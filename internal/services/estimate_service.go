package services

import (
	"context"
	"fmt"

	"github.com/projectdesk/projectdesk-api/internal/finance"
	"github.com/projectdesk/projectdesk-api/internal/jobs"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/internal/statemachine"
)

type EstimateService struct {
	repo            repository.EstimateRepository
	projectRepo     repository.ProjectRepository
	teamRepo        repository.TeamMemberRepository
	notificationSvc *NotificationService
	worker          *jobs.Worker
}

func NewEstimateService(
	repo repository.EstimateRepository,
	projectRepo repository.ProjectRepository,
	teamRepo repository.TeamMemberRepository,
	notificationSvc *NotificationService,
	worker *jobs.Worker,
) *EstimateService {
	return &EstimateService{
		repo:            repo,
		projectRepo:     projectRepo,
		teamRepo:        teamRepo,
		notificationSvc: notificationSvc,
		worker:          worker,
	}
}

// CostItemInput is an ad-hoc cost line supplied by the caller
type CostItemInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Months   float64 `json:"months"`
	Amount   float64 `json:"amount"`
}

// CreateEstimateInput is the payload for creating a new estimate version
type CreateEstimateInput struct {
	ProjectID       uint            `json:"project_id"`
	DirectCosts     []CostItemInput `json:"direct_costs"`
	IndirectCosts   []CostItemInput `json:"indirect_costs"`
	AdditionalCosts []CostItemInput `json:"additional_costs"`
	ProfitPct       float64         `json:"profit_pct"`
	TaxPct          float64         `json:"tax_pct"`
}

func (s *EstimateService) FindByID(ctx context.Context, id uint) (*models.Estimate, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EstimateService) FindByProject(ctx context.Context, projectID uint) ([]models.Estimate, error) {
	return s.repo.FindByProject(ctx, projectID)
}

func (s *EstimateService) List(ctx context.Context, query *repository.ListQuery) ([]models.Estimate, int64, error) {
	return s.repo.List(ctx, query)
}

// Create snapshots the project's current team and the supplied cost lines,
// runs the cost breakdown, and appends a new estimate version. The snapshot
// freezes rates and hours, so editing assignments afterwards never changes
// an existing estimate.
func (s *EstimateService) Create(ctx context.Context, input CreateEstimateInput) (*models.Estimate, error) {
	for _, item := range input.DirectCosts {
		if item.Quantity < 0 || item.Rate < 0 || item.Months < 0 {
			return nil, fmt.Errorf("%w: direct cost lines cannot be negative", ErrValidation)
		}
	}
	for _, item := range append(append([]CostItemInput{}, input.IndirectCosts...), input.AdditionalCosts...) {
		if item.Amount < 0 {
			return nil, fmt.Errorf("%w: cost amounts cannot be negative", ErrValidation)
		}
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, fmt.Errorf("%w: project %d not found", ErrValidation, input.ProjectID)
	}

	team, err := s.teamRepo.FindByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project team: %w", err)
	}

	labor := make([]finance.LaborItem, 0, len(team))
	laborItems := make([]models.EstimateLaborItem, 0, len(team))
	for _, tm := range team {
		labor = append(labor, finance.LaborItem{HourlyRate: tm.HourlyRate, EstimatedHours: tm.EstimatedHours})
		laborItems = append(laborItems, models.EstimateLaborItem{
			EmployeeID:     tm.EmployeeID,
			EmployeeName:   tm.EmployeeName,
			Designation:    tm.Designation,
			HourlyRate:     tm.HourlyRate,
			EstimatedHours: tm.EstimatedHours,
			TotalCost:      tm.TotalCost,
		})
	}

	direct := make([]finance.DirectItem, 0, len(input.DirectCosts))
	costItems := make([]models.EstimateCostItem, 0, len(input.DirectCosts)+len(input.IndirectCosts)+len(input.AdditionalCosts))
	for _, item := range input.DirectCosts {
		direct = append(direct, finance.DirectItem{Quantity: item.Quantity, Rate: item.Rate, Months: item.Months})
		costItems = append(costItems, models.EstimateCostItem{
			Category: models.CostCategoryDirect,
			Name:     item.Name,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Months:   item.Months,
			Amount:   item.Quantity * item.Rate * item.Months,
		})
	}

	indirect := make([]finance.FlatItem, 0, len(input.IndirectCosts))
	for _, item := range input.IndirectCosts {
		indirect = append(indirect, finance.FlatItem{Amount: item.Amount})
		costItems = append(costItems, models.EstimateCostItem{
			Category: models.CostCategoryIndirect,
			Name:     item.Name,
			Amount:   item.Amount,
		})
	}

	additional := make([]finance.FlatItem, 0, len(input.AdditionalCosts))
	for _, item := range input.AdditionalCosts {
		additional = append(additional, finance.FlatItem{Amount: item.Amount})
		costItems = append(costItems, models.EstimateCostItem{
			Category: models.CostCategoryAdditional,
			Name:     item.Name,
			Amount:   item.Amount,
		})
	}

	breakdown := finance.EstimateBreakdown(labor, direct, indirect, additional, input.ProfitPct, input.TaxPct)

	estimate := &models.Estimate{
		ProjectID:      input.ProjectID,
		Status:         models.EstimateStatusPending,
		ProfitPct:      input.ProfitPct,
		TaxPct:         input.TaxPct,
		LaborCost:      breakdown.LaborCost,
		DirectCost:     breakdown.DirectCost,
		IndirectCost:   breakdown.IndirectCost,
		AdditionalCost: breakdown.AdditionalCost,
		Subtotal:       breakdown.Subtotal,
		ProfitAmount:   breakdown.ProfitAmount,
		TaxAmount:      breakdown.TaxAmount,
		FinalAmount:    breakdown.FinalAmount,
		LaborItems:     laborItems,
		CostItems:      costItems,
	}

	if err := s.repo.CreateVersion(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

// Approve moves the estimate to Approved and records its final amount as the
// project's billing amount.
func (s *EstimateService) Approve(ctx context.Context, id uint) (*models.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "estimate", id)
	}

	efsm := statemachine.NewEstimateFSM(estimate)
	if err := efsm.Approve(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.UpdateStatus(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, estimate.ProjectID)
	if err == nil {
		project.FinalBillingAmount = estimate.FinalAmount
		if err := s.projectRepo.Update(ctx, project); err != nil {
			return nil, fmt.Errorf("failed to update project billing amount: %w", err)
		}
	}

	s.notifyStatus(estimate)
	return estimate, nil
}

// Reject moves the estimate to its terminal Rejected state
func (s *EstimateService) Reject(ctx context.Context, id uint) (*models.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "estimate", id)
	}

	efsm := statemachine.NewEstimateFSM(estimate)
	if err := efsm.Reject(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.UpdateStatus(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}

	s.notifyStatus(estimate)
	return estimate, nil
}

// RequestChange marks the estimate Change Requested with the reviewer's
// comment and immediately spawns a fresh Pending draft version carrying the
// same snapshot, ready for rework.
func (s *EstimateService) RequestChange(ctx context.Context, id uint, comment string) (*models.Estimate, error) {
	if comment == "" {
		return nil, fmt.Errorf("%w: change comment is required", ErrValidation)
	}

	estimate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "estimate", id)
	}

	efsm := statemachine.NewEstimateFSM(estimate)
	if err := efsm.RequestChange(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.UpdateStatus(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}

	draft := copyAsDraft(estimate)
	if err := s.repo.CreateVersion(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to create draft version: %w", err)
	}

	s.notifyStatus(estimate)
	return draft, nil
}

// copyAsDraft duplicates an estimate's snapshot into a new Pending row
// without IDs, letting CreateVersion assign the next version number.
func copyAsDraft(estimate *models.Estimate) *models.Estimate {
	draft := &models.Estimate{
		ProjectID:      estimate.ProjectID,
		Status:         models.EstimateStatusPending,
		ProfitPct:      estimate.ProfitPct,
		TaxPct:         estimate.TaxPct,
		LaborCost:      estimate.LaborCost,
		DirectCost:     estimate.DirectCost,
		IndirectCost:   estimate.IndirectCost,
		AdditionalCost: estimate.AdditionalCost,
		Subtotal:       estimate.Subtotal,
		ProfitAmount:   estimate.ProfitAmount,
		TaxAmount:      estimate.TaxAmount,
		FinalAmount:    estimate.FinalAmount,
	}
	for _, item := range estimate.LaborItems {
		item.ID = 0
		item.EstimateID = 0
		draft.LaborItems = append(draft.LaborItems, item)
	}
	for _, item := range estimate.CostItems {
		item.ID = 0
		item.EstimateID = 0
		draft.CostItems = append(draft.CostItems, item)
	}
	return draft
}

func (s *EstimateService) notifyStatus(estimate *models.Estimate) {
	if s.worker == nil {
		return
	}
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.Notify(ctx,
			"Estimate status changed",
			fmt.Sprintf("Estimate v%d for project %d is now %s", estimate.Version, estimate.ProjectID, estimate.Status),
			models.NotificationTypeEstimateStatus)
	})
}
