package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mlreyes/panelhub/internal/app/models/dto"
	"github.com/mlreyes/panelhub/internal/app/services"
	"github.com/mlreyes/panelhub/internal/middleware"
)

// FacultyController handles faculty member and department operations
type FacultyController struct {
	facultyService *services.FacultyService
	logger         zerolog.Logger
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService, logger zerolog.Logger) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
		logger:         logger,
	}
}

// FacultyMemberRequest is the create/update payload for a faculty member.
type FacultyMemberRequest struct {
	FullName     string `json:"fullName" binding:"required" example:"Dr. Maria Santos"`
	DepartmentID int64  `json:"departmentId" binding:"required" example:"2"`
}

// ListDepartments lists every department
// @Summary List departments
// @Tags faculty
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /departments [get]
// @Security Bearer
func (c *FacultyController) ListDepartments(ctx *gin.Context) {
	departments, err := c.facultyService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments))
}

// ListFacultyMembers lists faculty members
// @Summary List faculty members
// @Description Lists faculty members, optionally filtered by department.
// @Tags faculty
// @Produce json
// @Param departmentId query int false "Filter by department"
// @Success 200 {object} dto.APIResponse
// @Router /faculty [get]
// @Security Bearer
func (c *FacultyController) ListFacultyMembers(ctx *gin.Context) {
	departmentID, _ := strconv.ParseInt(ctx.Query("departmentId"), 10, 64)

	members, err := c.facultyService.ListFacultyMembers(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(members))
}

// GetFacultyMember retrieves one faculty member
// @Summary Get a faculty member
// @Tags faculty
// @Produce json
// @Param id path int true "Faculty member ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /faculty/{id} [get]
// @Security Bearer
func (c *FacultyController) GetFacultyMember(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	member, err := c.facultyService.GetFacultyMember(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(member))
}

// CreateFacultyMember registers a faculty member
// @Summary Create a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body FacultyMemberRequest true "Faculty member"
// @Success 201 {object} dto.APIResponse
// @Router /faculty [post]
// @Security Bearer
func (c *FacultyController) CreateFacultyMember(ctx *gin.Context) {
	var req FacultyMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	member, err := c.facultyService.CreateFacultyMember(ctx.Request.Context(), req.FullName, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("facultyMemberId", member.ID).Msg("Faculty member created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(member))
}

// UpdateFacultyMember updates a faculty member
// @Summary Update a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Param id path int true "Faculty member ID"
// @Param request body FacultyMemberRequest true "Faculty member"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /faculty/{id} [put]
// @Security Bearer
func (c *FacultyController) UpdateFacultyMember(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	var req FacultyMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	member, err := c.facultyService.UpdateFacultyMember(ctx.Request.Context(), id, req.FullName, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(member))
}

// DeleteFacultyMember removes a faculty member
// @Summary Delete a faculty member
// @Tags faculty
// @Produce json
// @Param id path int true "Faculty member ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /faculty/{id} [delete]
// @Security Bearer
func (c *FacultyController) DeleteFacultyMember(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	if err := c.facultyService.DeleteFacultyMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Faculty member deleted"}))
}

// pathID parses the :id path parameter, writing the error response itself.
func pathID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter"),
		})
		return 0, fmt.Errorf("invalid id parameter %q", ctx.Param("id"))
	}
	return id, nil
}
