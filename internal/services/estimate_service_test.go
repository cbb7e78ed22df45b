package services

import (
	"context"
	"testing"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock EstimateRepository
type mockEstimateRepository struct {
	repository.EstimateRepository
	mockFindByID      func(ctx context.Context, id uint) (*models.Estimate, error)
	mockCreateVersion func(ctx context.Context, estimate *models.Estimate) error
	mockUpdateStatus  func(ctx context.Context, estimate *models.Estimate) error
}

func (m *mockEstimateRepository) FindByID(ctx context.Context, id uint) (*models.Estimate, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockEstimateRepository) CreateVersion(ctx context.Context, estimate *models.Estimate) error {
	if m.mockCreateVersion != nil {
		return m.mockCreateVersion(ctx, estimate)
	}
	return nil
}

func (m *mockEstimateRepository) UpdateStatus(ctx context.Context, estimate *models.Estimate) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, estimate)
	}
	return nil
}

// Mock ProjectRepository
type mockProjectRepository struct {
	repository.ProjectRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Project, error)
	mockUpdate   func(ctx context.Context, project *models.Project) error
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Project{ID: id}, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, project)
	}
	return nil
}

// Mock TeamMemberRepository
type mockTeamMemberRepository struct {
	repository.TeamMemberRepository
	mockFindByProject func(ctx context.Context, projectID uint) ([]models.TeamMember, error)
}

func (m *mockTeamMemberRepository) FindByProject(ctx context.Context, projectID uint) ([]models.TeamMember, error) {
	if m.mockFindByProject != nil {
		return m.mockFindByProject(ctx, projectID)
	}
	return nil, nil
}

func newEstimateServiceForTest(estimateRepo *mockEstimateRepository, projectRepo *mockProjectRepository, teamRepo *mockTeamMemberRepository) *EstimateService {
	logger.Setup("test")
	// nil worker: notifications are skipped entirely
	return NewEstimateService(estimateRepo, projectRepo, teamRepo, nil, nil)
}

func TestCreateEstimate_SnapshotsTeamAndComputesTotals(t *testing.T) {
	team := []models.TeamMember{
		{EmployeeID: 1, EmployeeName: "Asha Verma", Designation: "Engineer", HourlyRate: 100, EstimatedHours: 100, TotalCost: 10000},
		{EmployeeID: 2, EmployeeName: "Ravi Nair", Designation: "Architect", HourlyRate: 200, EstimatedHours: 50, TotalCost: 10000},
	}
	teamRepo := &mockTeamMemberRepository{
		mockFindByProject: func(ctx context.Context, projectID uint) ([]models.TeamMember, error) {
			return team, nil
		},
	}
	var created *models.Estimate
	estimateRepo := &mockEstimateRepository{
		mockCreateVersion: func(ctx context.Context, e *models.Estimate) error {
			e.ID = 10
			e.Version = 1
			created = e
			return nil
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, teamRepo)

	estimate, err := service.Create(context.Background(), CreateEstimateInput{
		ProjectID: 5,
		DirectCosts: []CostItemInput{
			{Name: "Cloud hosting", Quantity: 2, Rate: 500, Months: 2},
		},
		IndirectCosts: []CostItemInput{
			{Name: "Office overhead", Amount: 5000},
		},
		ProfitPct: 15,
		TaxPct:    18,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.InDelta(t, 20000, estimate.LaborCost, 0.001)
	assert.InDelta(t, 2000, estimate.DirectCost, 0.001)
	assert.InDelta(t, 5000, estimate.IndirectCost, 0.001)
	assert.InDelta(t, 0, estimate.AdditionalCost, 0.001)
	assert.InDelta(t, 27000, estimate.Subtotal, 0.001)
	assert.InDelta(t, 4050, estimate.ProfitAmount, 0.001)
	assert.InDelta(t, 5589.0, estimate.TaxAmount, 0.001)
	assert.InDelta(t, 36639.0, estimate.FinalAmount, 0.001)
	assert.Equal(t, models.EstimateStatusPending, estimate.Status)

	// The team snapshot is frozen into the estimate's own rows
	require.Len(t, estimate.LaborItems, 2)
	assert.Equal(t, "Asha Verma", estimate.LaborItems[0].EmployeeName)
	assert.InDelta(t, 10000, estimate.LaborItems[0].TotalCost, 0.001)

	require.Len(t, estimate.CostItems, 2)
	assert.Equal(t, models.CostCategoryDirect, estimate.CostItems[0].Category)
	assert.InDelta(t, 2000, estimate.CostItems[0].Amount, 0.001)
	assert.Equal(t, models.CostCategoryIndirect, estimate.CostItems[1].Category)
}

func TestCreateEstimate_RejectsNegativeCostLines(t *testing.T) {
	service := newEstimateServiceForTest(&mockEstimateRepository{}, &mockProjectRepository{}, &mockTeamMemberRepository{})

	_, err := service.Create(context.Background(), CreateEstimateInput{
		ProjectID:   1,
		DirectCosts: []CostItemInput{{Quantity: -1, Rate: 100, Months: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), CreateEstimateInput{
		ProjectID:     1,
		IndirectCosts: []CostItemInput{{Amount: -500}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateEstimate_UnknownProjectRejected(t *testing.T) {
	projectRepo := &mockProjectRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Project, error) {
			return nil, assert.AnError
		},
	}
	service := newEstimateServiceForTest(&mockEstimateRepository{}, projectRepo, &mockTeamMemberRepository{})

	_, err := service.Create(context.Background(), CreateEstimateInput{ProjectID: 99})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveEstimate_SetsProjectBillingAmount(t *testing.T) {
	estimate := &models.Estimate{
		ID:          1,
		ProjectID:   5,
		Version:     2,
		Status:      models.EstimateStatusPending,
		FinalAmount: 36639.0,
	}
	estimateRepo := &mockEstimateRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
			return estimate, nil
		},
	}
	var savedProject *models.Project
	projectRepo := &mockProjectRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Project, error) {
			return &models.Project{ID: id}, nil
		},
		mockUpdate: func(ctx context.Context, p *models.Project) error {
			savedProject = p
			return nil
		},
	}
	service := newEstimateServiceForTest(estimateRepo, projectRepo, &mockTeamMemberRepository{})

	approved, err := service.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.EstimateStatusApproved, approved.Status)
	require.NotNil(t, savedProject)
	assert.InDelta(t, 36639.0, savedProject.FinalBillingAmount, 0.001)
}

func TestApproveEstimate_NonPendingRejected(t *testing.T) {
	for _, status := range []string{models.EstimateStatusApproved, models.EstimateStatusRejected, models.EstimateStatusChangeRequested} {
		estimateRepo := &mockEstimateRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
				return &models.Estimate{ID: 1, Status: status}, nil
			},
		}
		service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

		_, err := service.Approve(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidState, "status %s should not be approvable", status)
	}
}

func TestRequestChange_SpawnsPendingDraftVersion(t *testing.T) {
	estimate := &models.Estimate{
		ID:          20,
		ProjectID:   5,
		Version:     3,
		Status:      models.EstimateStatusPending,
		ProfitPct:   15,
		TaxPct:      18,
		FinalAmount: 36639.0,
		LaborItems: []models.EstimateLaborItem{
			{ID: 100, EstimateID: 20, EmployeeID: 1, EmployeeName: "Asha Verma", HourlyRate: 100, EstimatedHours: 100, TotalCost: 10000},
		},
		CostItems: []models.EstimateCostItem{
			{ID: 200, EstimateID: 20, Category: models.CostCategoryIndirect, Name: "Office overhead", Amount: 5000},
		},
	}
	var statusUpdated *models.Estimate
	var draftCreated *models.Estimate
	estimateRepo := &mockEstimateRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
			return estimate, nil
		},
		mockUpdateStatus: func(ctx context.Context, e *models.Estimate) error {
			statusUpdated = e
			return nil
		},
		mockCreateVersion: func(ctx context.Context, e *models.Estimate) error {
			e.ID = 21
			e.Version = 4
			draftCreated = e
			return nil
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

	draft, err := service.RequestChange(context.Background(), 20, "labor hours look too low")
	require.NoError(t, err)

	// The reviewed version keeps the comment and its new status
	require.NotNil(t, statusUpdated)
	assert.Equal(t, models.EstimateStatusChangeRequested, statusUpdated.Status)
	require.NotNil(t, statusUpdated.ChangeComment)
	assert.Equal(t, "labor hours look too low", *statusUpdated.ChangeComment)

	// The returned draft is a fresh Pending copy of the same snapshot
	require.NotNil(t, draftCreated)
	assert.Equal(t, draft, draftCreated)
	assert.Equal(t, models.EstimateStatusPending, draft.Status)
	assert.Equal(t, 4, draft.Version)
	assert.Nil(t, draft.ChangeComment)
	assert.InDelta(t, 36639.0, draft.FinalAmount, 0.001)
	require.Len(t, draft.LaborItems, 1)
	assert.Zero(t, draft.LaborItems[0].ID, "snapshot rows must be re-inserted, not moved")
	require.Len(t, draft.CostItems, 1)
	assert.Zero(t, draft.CostItems[0].ID)
}

func TestRequestChange_CommentRequired(t *testing.T) {
	findCalled := false
	estimateRepo := &mockEstimateRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
			findCalled = true
			return &models.Estimate{ID: 1, Status: models.EstimateStatusPending}, nil
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

	_, err := service.RequestChange(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, findCalled)
}

func TestRejectEstimate_IsTerminal(t *testing.T) {
	estimate := &models.Estimate{ID: 1, Status: models.EstimateStatusPending}
	estimateRepo := &mockEstimateRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
			return estimate, nil
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

	rejected, err := service.Reject(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.EstimateStatusRejected, rejected.Status)
	assert.True(t, rejected.IsTerminal())

	// A rejected estimate cannot move again
	_, err = service.Approve(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveEstimate_MissingEstimateIsNotFound(t *testing.T) {
	estimateRepo := &mockEstimateRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Estimate, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

	_, err := service.Approve(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Reject(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.RequestChange(context.Background(), 99, "needs rework")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateEstimate_SurfacesVersionConflict(t *testing.T) {
	estimateRepo := &mockEstimateRepository{
		mockCreateVersion: func(ctx context.Context, e *models.Estimate) error {
			return repository.ErrVersionConflict
		},
	}
	service := newEstimateServiceForTest(estimateRepo, &mockProjectRepository{}, &mockTeamMemberRepository{})

	_, err := service.Create(context.Background(), CreateEstimateInput{ProjectID: 1})
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}
