package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

type TeamMemberHandler struct {
	teamService *services.TeamMemberService
}

func NewTeamMemberHandler(teamService *services.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{teamService: teamService}
}

// @Summary List Project Team
// @Description Get all employees assigned to a project
// @Tags Team
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Router /projects/{project_id}/team [get]
func (h *TeamMemberHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	members, err := h.teamService.FindByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team_members": members})
}

// @Summary Assign Team Member
// @Description Assign an employee to a project with a rate and estimated hours
// @Tags Team
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.TeamMember true "Assignment Data"
// @Success 201 {object} models.TeamMember
// @Failure 422 {object} map[string]string
// @Router /projects/{project_id}/team [post]
func (h *TeamMemberHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var member models.TeamMember
	if err := BindNestedOrFlat(c, "team_member", &member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member.ProjectID = uint(projectID)

	if err := h.teamService.Assign(c.Request.Context(), &member); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"team_member": member})
}

// @Summary Remove Team Member
// @Description Remove an assignment from a project
// @Tags Team
// @Produce json
// @Param project_id path int true "Project ID"
// @Param member_id path int true "Assignment ID"
// @Success 200 {object} map[string]string
// @Router /projects/{project_id}/team/{member_id} [delete]
func (h *TeamMemberHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	if err := h.teamService.Remove(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team member removed"})
}

type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// @Summary List Project Milestones
// @Description Get all milestones for a project
// @Tags Milestones
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Router /projects/{project_id}/milestones [get]
func (h *MilestoneHandler) Index(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	milestones, err := h.milestoneService.FindByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// @Summary Create Milestone
// @Description Create a milestone; when amount is omitted it is derived from the payment percentage of the project's billing amount
// @Tags Milestones
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Milestone true "Milestone Data"
// @Success 201 {object} models.Milestone
// @Router /projects/{project_id}/milestones [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var milestone models.Milestone
	if err := BindNestedOrFlat(c, "milestone", &milestone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	milestone.ProjectID = uint(projectID)

	if err := h.milestoneService.Create(c.Request.Context(), &milestone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"milestone": milestone})
}

// @Summary Update Milestone
// @Description Update an existing milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param milestone_id path int true "Milestone ID"
// @Param request body models.Milestone true "Milestone Data"
// @Success 200 {object} models.Milestone
// @Router /projects/{project_id}/milestones/{milestone_id} [put]
func (h *MilestoneHandler) Update(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	id, _ := strconv.ParseUint(c.Param("milestone_id"), 10, 32)
	var milestone models.Milestone
	if err := BindNestedOrFlat(c, "milestone", &milestone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	milestone.ID = uint(id)
	milestone.ProjectID = uint(projectID)

	if err := h.milestoneService.Update(c.Request.Context(), &milestone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestone": milestone})
}

type MilestoneStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update Milestone Status
// @Description Manually move a milestone between Pending, In Progress and Completed
// @Tags Milestones
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param milestone_id path int true "Milestone ID"
// @Param request body MilestoneStatusRequest true "New Status"
// @Success 200 {object} map[string]string
// @Router /projects/{project_id}/milestones/{milestone_id}/status [patch]
func (h *MilestoneHandler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("milestone_id"), 10, 32)
	var req MilestoneStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.milestoneService.UpdateStatus(c.Request.Context(), uint(id), req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "milestone status updated"})
}

// @Summary Delete Milestone
// @Description Delete a milestone
// @Tags Milestones
// @Produce json
// @Param project_id path int true "Project ID"
// @Param milestone_id path int true "Milestone ID"
// @Success 200 {object} map[string]string
// @Router /projects/{project_id}/milestones/{milestone_id} [delete]
func (h *MilestoneHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("milestone_id"), 10, 32)
	if err := h.milestoneService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "milestone deleted"})
}
