package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mlreyes/panelhub/internal/app/models/dto"
	"github.com/mlreyes/panelhub/internal/app/services"
	"github.com/mlreyes/panelhub/internal/middleware"
	"github.com/mlreyes/panelhub/internal/pkg/helpers"
)

// RequestController handles defense request CRUD and evaluation endpoints
type RequestController struct {
	requestService *services.RequestService
	logger         zerolog.Logger
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService *services.RequestService, logger zerolog.Logger) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

// CreateRequest creates a draft defense request
// @Summary Create a defense request
// @Description Creates a draft request with its student groups and panel assignments. Role labels may use the Adviser/Chairman synonyms.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateDefenseRequestRequest true "Request content"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Unknown role label, bad group scope, or missing fields"
// @Router /requests [post]
// @Security Bearer
func (c *RequestController) CreateRequest(ctx *gin.Context) {
	var payload dto.CreateDefenseRequestRequest
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	req, err := payload.ToModel()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	created, err := c.requestService.CreateRequest(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// ListRequests lists defense requests
// @Summary List defense requests
// @Tags requests
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Param departmentId query int false "Filter by department"
// @Param stage query string false "Filter by workflow stage"
// @Param schoolYear query string false "Filter by school year"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Router /requests [get]
// @Security Bearer
func (c *RequestController) ListRequests(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filters := make(map[string]interface{})
	if departmentID, err := strconv.ParseInt(ctx.Query("departmentId"), 10, 64); err == nil {
		filters["departmentId"] = departmentID
	}
	if stage := ctx.Query("stage"); stage != "" {
		filters["stage"] = stage
	}
	if schoolYear := ctx.Query("schoolYear"); schoolYear != "" {
		filters["schoolYear"] = schoolYear
	}

	requests, total, err := c.requestService.ListRequests(ctx.Request.Context(), offset, limit, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      requests,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}))
}

// GetRequest retrieves one defense request
// @Summary Get a defense request
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /requests/{id} [get]
// @Security Bearer
func (c *RequestController) GetRequest(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	req, err := c.requestService.GetRequest(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(req))
}

// UpdateRequest replaces the content of a draft request
// @Summary Update a draft request
// @Description Replaces the groups and assignments of a request still in Draft. Submitted requests are read-only.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body dto.CreateDefenseRequestRequest true "Request content"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Request is no longer in draft"
// @Router /requests/{id} [put]
// @Security Bearer
func (c *RequestController) UpdateRequest(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	var payload dto.CreateDefenseRequestRequest
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	updated, err := payload.ToModel()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return
	}

	req, err := c.requestService.UpdateRequest(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), updated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(req))
}

// DeleteRequest removes a draft request
// @Summary Delete a draft request
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Request is no longer in draft"
// @Router /requests/{id} [delete]
// @Security Bearer
func (c *RequestController) DeleteRequest(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	if err := c.requestService.DeleteRequest(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Defense request deleted"}))
}

// EvaluateRequest runs the rule engine over a request
// @Summary Evaluate a defense request
// @Description Recomputes appearance counts, limit flags and compensation for the request. The evaluation is derived data and is never stored.
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluationResponse}
// @Failure 422 {object} dto.APIResponse "Missing rate configuration or malformed request data"
// @Router /requests/{id}/evaluation [get]
// @Security Bearer
func (c *RequestController) EvaluateRequest(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	req, eval, err := c.requestService.Evaluate(ctx.Request.Context(), id)
	if err != nil {
		c.logger.Warn().Err(err).Int64("requestId", id).Msg("Evaluation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.EvaluationResponse{
		Request:    req,
		Evaluation: eval,
	}))
}
