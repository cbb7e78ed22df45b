package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

// listQueryFromContext builds a ListQuery from the standard paging params
func listQueryFromContext(c *gin.Context, filterKeys ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	for _, key := range filterKeys {
		if v := c.Query(key); v != "" {
			query.Filters[key] = v
		}
	}
	return query
}

func paginationBlock(query *repository.ListQuery, total int64) gin.H {
	return gin.H{"page": query.Page, "per_page": query.PerPage, "total": total}
}

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List Clients
// @Description Get a paginated list of clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} map[string]interface{}
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "is_active")

	clients, total, err := h.clientService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients, "pagination": paginationBlock(query, total)})
}

// @Summary Get Client
// @Description Get a client by ID
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string
// @Router /clients/{client_id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("client_id"), 10, 32)
	client, err := h.clientService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary Create Client
// @Description Create a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body models.Client true "Client Data"
// @Success 201 {object} models.Client
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var client models.Client
	if err := BindNestedOrFlat(c, "client", &client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clientService.Create(c.Request.Context(), &client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// @Summary Update Client
// @Description Update an existing client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client_id path int true "Client ID"
// @Param request body models.Client true "Client Data"
// @Success 200 {object} models.Client
// @Router /clients/{client_id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("client_id"), 10, 32)
	var client models.Client
	if err := BindNestedOrFlat(c, "client", &client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client.ID = uint(id)

	if err := h.clientService.Update(c.Request.Context(), &client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary Delete Client
// @Description Delete a client
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Router /clients/{client_id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("client_id"), 10, 32)
	if err := h.clientService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

type ProjectStatusHandler struct {
	statusService *services.ProjectStatusService
}

func NewProjectStatusHandler(statusService *services.ProjectStatusService) *ProjectStatusHandler {
	return &ProjectStatusHandler{statusService: statusService}
}

// @Summary List Project Statuses
// @Description Get all configured project statuses in display order
// @Tags ProjectStatuses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /project_statuses [get]
func (h *ProjectStatusHandler) Index(c *gin.Context) {
	statuses, err := h.statusService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project_statuses": statuses})
}

// @Summary Create Project Status
// @Description Create a new project status
// @Tags ProjectStatuses
// @Accept json
// @Produce json
// @Param request body models.ProjectStatus true "Status Data"
// @Success 201 {object} models.ProjectStatus
// @Router /project_statuses [post]
func (h *ProjectStatusHandler) Create(c *gin.Context) {
	var status models.ProjectStatus
	if err := BindNestedOrFlat(c, "project_status", &status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.statusService.Create(c.Request.Context(), &status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project_status": status})
}

// @Summary Update Project Status
// @Description Update a project status
// @Tags ProjectStatuses
// @Accept json
// @Produce json
// @Param status_id path int true "Status ID"
// @Param request body models.ProjectStatus true "Status Data"
// @Success 200 {object} models.ProjectStatus
// @Router /project_statuses/{status_id} [put]
func (h *ProjectStatusHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("status_id"), 10, 32)
	var status models.ProjectStatus
	if err := BindNestedOrFlat(c, "project_status", &status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status.ID = uint(id)

	if err := h.statusService.Update(c.Request.Context(), &status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_status": status})
}

// @Summary Delete Project Status
// @Description Delete a project status
// @Tags ProjectStatuses
// @Produce json
// @Param status_id path int true "Status ID"
// @Success 200 {object} map[string]string
// @Router /project_statuses/{status_id} [delete]
func (h *ProjectStatusHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("status_id"), 10, 32)
	if err := h.statusService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project status deleted"})
}

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// @Summary List Employees
// @Description Get a paginated list of employees
// @Tags Employees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Router /employees [get]
func (h *EmployeeHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c)

	employees, total, err := h.employeeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees, "pagination": paginationBlock(query, total)})
}

// @Summary Get Employee
// @Description Get an employee by ID
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Success 200 {object} models.Employee
// @Failure 404 {object} map[string]string
// @Router /employees/{employee_id} [get]
func (h *EmployeeHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	employee, err := h.employeeService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// @Summary Create Employee
// @Description Create a new employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body models.Employee true "Employee Data"
// @Success 201 {object} models.Employee
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var employee models.Employee
	if err := BindNestedOrFlat(c, "employee", &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.employeeService.Create(c.Request.Context(), &employee); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// @Summary Update Employee
// @Description Update an existing employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Param request body models.Employee true "Employee Data"
// @Success 200 {object} models.Employee
// @Router /employees/{employee_id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	var employee models.Employee
	if err := BindNestedOrFlat(c, "employee", &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee.ID = uint(id)

	if err := h.employeeService.Update(c.Request.Context(), &employee); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// @Summary Delete Employee
// @Description Delete an employee
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Router /employees/{employee_id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	if err := h.employeeService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// @Summary List Projects
// @Description Get a paginated list of projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param client_id query int false "Filter by client"
// @Param project_status_id query int false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "client_id", "project_status_id")

	projects, total, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"projects": responses, "pagination": paginationBlock(query, total)})
}

// @Summary Get Project
// @Description Get a project by ID
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Failure 404 {object} map[string]string
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	project, err := h.projectService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Create Project
// @Description Create a new project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body models.Project true "Project Data"
// @Success 201 {object} models.ProjectResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var project models.Project
	if err := BindNestedOrFlat(c, "project", &project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.Create(c.Request.Context(), &project); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

// @Summary Update Project
// @Description Update an existing project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Project true "Project Data"
// @Success 200 {object} models.ProjectResponse
// @Router /projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var project models.Project
	if err := BindNestedOrFlat(c, "project", &project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project.ID = uint(id)

	if err := h.projectService.Update(c.Request.Context(), &project); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Delete Project
// @Description Delete a project
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]string
// @Router /projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err := h.projectService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
