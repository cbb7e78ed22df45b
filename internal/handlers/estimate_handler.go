package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

type EstimateHandler struct {
	estimateService *services.EstimateService
	exportService   *services.ExportService
}

func NewEstimateHandler(estimateService *services.EstimateService, exportService *services.ExportService) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		exportService:   exportService,
	}
}

// @Summary List Estimates
// @Description Get a paginated list of estimates across projects
// @Tags Estimates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param project_id query int false "Filter by project"
// @Success 200 {object} map[string]interface{}
// @Router /estimates [get]
func (h *EstimateHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "status", "project_id")

	estimates, total, err := h.estimateService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"estimates": responses, "pagination": paginationBlock(query, total)})
}

// @Summary List Project Estimate Versions
// @Description Get every estimate version for a project, newest first
// @Tags Estimates
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Router /projects/{project_id}/estimates [get]
func (h *EstimateHandler) IndexByProject(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	estimates, err := h.estimateService.FindByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"estimates": responses})
}

// @Summary Get Estimate
// @Description Get an estimate version with its labor and cost line items
// @Tags Estimates
// @Produce json
// @Param estimate_id path int true "Estimate ID"
// @Success 200 {object} models.EstimateResponse
// @Failure 404 {object} map[string]string
// @Router /estimates/{estimate_id} [get]
func (h *EstimateHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("estimate_id"), 10, 32)
	estimate, err := h.estimateService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "estimate not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate.ToResponse()})
}

// @Summary Create Estimate Version
// @Description Snapshot the project team and the given cost lines into a new Pending estimate version
// @Tags Estimates
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body services.CreateEstimateInput true "Estimate Data"
// @Success 201 {object} models.EstimateResponse
// @Failure 422 {object} map[string]string
// @Router /projects/{project_id}/estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var input services.CreateEstimateInput
	if err := BindNestedOrFlat(c, "estimate", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ProjectID = uint(projectID)

	estimate, err := h.estimateService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"estimate": estimate.ToResponse()})
}

// @Summary Approve Estimate
// @Description Approve a Pending estimate and set the project's billing amount
// @Tags Estimates
// @Produce json
// @Param estimate_id path int true "Estimate ID"
// @Success 200 {object} models.EstimateResponse
// @Failure 409 {object} map[string]string
// @Router /estimates/{estimate_id}/approve [post]
func (h *EstimateHandler) Approve(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("estimate_id"), 10, 32)
	estimate, err := h.estimateService.Approve(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate.ToResponse()})
}

// @Summary Reject Estimate
// @Description Reject a Pending estimate; rejection is terminal
// @Tags Estimates
// @Produce json
// @Param estimate_id path int true "Estimate ID"
// @Success 200 {object} models.EstimateResponse
// @Failure 409 {object} map[string]string
// @Router /estimates/{estimate_id}/reject [post]
func (h *EstimateHandler) Reject(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("estimate_id"), 10, 32)
	estimate, err := h.estimateService.Reject(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate.ToResponse()})
}

type RequestChangeRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// @Summary Request Changes On Estimate
// @Description Mark a Pending estimate as Change Requested and spawn a fresh draft version
// @Tags Estimates
// @Accept json
// @Produce json
// @Param estimate_id path int true "Estimate ID"
// @Param request body RequestChangeRequest true "Reviewer Comment"
// @Success 200 {object} models.EstimateResponse
// @Failure 422 {object} map[string]string
// @Router /estimates/{estimate_id}/request_change [post]
func (h *EstimateHandler) RequestChange(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("estimate_id"), 10, 32)
	var req RequestChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment is required"})
		return
	}

	draft, err := h.estimateService.RequestChange(c.Request.Context(), uint(id), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": draft.ToResponse()})
}

// @Summary Export Estimate PDF
// @Description Download the full cost breakdown of an estimate version as PDF
// @Tags Estimates
// @Produce application/octet-stream
// @Param estimate_id path int true "Estimate ID"
// @Router /estimates/{estimate_id}/export [get]
func (h *EstimateHandler) Export(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("estimate_id"), 10, 32)
	data, filename, err := h.exportService.EstimatePDF(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
