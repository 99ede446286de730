package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/models/dto"
	"github.com/mlreyes/panelhub/internal/app/services"
	"github.com/mlreyes/panelhub/internal/middleware"
)

// WorkflowController handles approval pipeline endpoints
type WorkflowController struct {
	workflowService *services.WorkflowService
	authMiddleware  *middleware.AuthMiddleware
	logger          zerolog.Logger
}

// NewWorkflowController creates a new WorkflowController
func NewWorkflowController(
	workflowService *services.WorkflowService,
	authMiddleware *middleware.AuthMiddleware,
	logger zerolog.Logger,
) *WorkflowController {
	return &WorkflowController{
		workflowService: workflowService,
		authMiddleware:  authMiddleware,
		logger:          logger,
	}
}

// SubmitRequest moves a draft into Research Center review
// @Summary Submit a draft request
// @Description Moves a draft into Research Center review. The request content becomes read-only.
// @Tags workflow
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Request is not in draft"
// @Router /requests/{id}/submit [post]
// @Security Bearer
func (c *WorkflowController) SubmitRequest(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	req, err := c.workflowService.Submit(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(req))
}

// ApproveRequest records an approval at the caller's stage
// @Summary Approve a request
// @Description Advances the request past the caller's stage. A flagged request cannot pass Research Center without a justification document; Budget approval is final and records appearances.
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body dto.StageActionRequest false "Remarks"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Stage mismatch or missing justification"
// @Router /requests/{id}/approve [post]
// @Security Bearer
func (c *WorkflowController) ApproveRequest(ctx *gin.Context) {
	c.stageAction(ctx, c.workflowService.Approve)
}

// RejectRequest terminates a request at the caller's stage
// @Summary Reject a request
// @Tags workflow
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body dto.StageActionRequest false "Remarks"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Stage mismatch"
// @Router /requests/{id}/reject [post]
// @Security Bearer
func (c *WorkflowController) RejectRequest(ctx *gin.Context) {
	c.stageAction(ctx, c.workflowService.Reject)
}

// stageAction runs a shared approve/reject flow: parse the ID and remarks,
// load the caller's account, invoke the decision.
func (c *WorkflowController) stageAction(
	ctx *gin.Context,
	action func(reqCtx context.Context, requestID int64, actor *models.User, remarks string) (*models.DefenseRequest, error),
) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	var payload dto.StageActionRequest
	// Remarks are optional; an empty body is fine.
	_ = ctx.ShouldBindJSON(&payload)

	actor, err := c.authMiddleware.CurrentUser(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req, err := action(ctx.Request.Context(), id, actor, payload.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(req))
}

// UploadJustification attaches a justification document
// @Summary Upload a justification document
// @Description Attaches the document a flagged request needs before it can pass Research Center review.
// @Tags workflow
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Request ID"
// @Param file formData file true "Justification document"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Request is past Research Center review"
// @Router /requests/{id}/justification [post]
// @Security Bearer
func (c *WorkflowController) UploadJustification(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload named 'file' is required"),
		})
		return
	}

	file, err := c.workflowService.AttachJustification(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(file))
}
