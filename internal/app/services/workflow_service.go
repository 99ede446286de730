package services

import (
	"context"
	"mime/multipart"

	"github.com/mlreyes/panelhub/internal/app/engine"
	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
	"github.com/mlreyes/panelhub/internal/pkg/filestorage"
	"github.com/mlreyes/panelhub/internal/pkg/logger"
)

// Stage action labels written to the audit trail.
const (
	ActionSubmitted = "SUBMITTED"
	ActionApproved  = "APPROVED"
	ActionRejected  = "REJECTED"
)

// NextStage returns the stage a request advances to when the current stage
// approves it.
func NextStage(stage models.WorkflowStage) (models.WorkflowStage, error) {
	switch stage {
	case models.StageResearchCenter:
		return models.StageVPAA, nil
	case models.StageVPAA:
		return models.StageDean, nil
	case models.StageDean:
		return models.StageBudget, nil
	case models.StageBudget:
		return models.StageApproved, nil
	}
	return "", apperrors.ErrInvalidStage
}

// StageForRole maps a reviewer account role onto the pipeline stage it may act
// on. Faculty accounts act on no review stage.
func StageForRole(role models.RoleType) (models.WorkflowStage, bool) {
	switch role {
	case models.RoleResearchCenter:
		return models.StageResearchCenter, true
	case models.RoleVPAA:
		return models.StageVPAA, true
	case models.RoleDean:
		return models.StageDean, true
	case models.RoleBudget:
		return models.StageBudget, true
	}
	return "", false
}

// WorkflowService routes defense requests through the approval pipeline:
// Draft -> Research Center -> VPAA -> Dean -> Budget -> Approved. Any review
// stage may reject. The Research Center stage gates flagged requests on an
// uploaded justification document.
type WorkflowService struct {
	requestService    *RequestService
	requestRepository *repositories.RequestRepository
	facultyRepository *repositories.FacultyRepository
	fileRepository    *repositories.FileRepository
	storage           filestorage.Storage
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(
	requestService *RequestService,
	requestRepository *repositories.RequestRepository,
	facultyRepository *repositories.FacultyRepository,
	fileRepository *repositories.FileRepository,
	storage filestorage.Storage,
) *WorkflowService {
	return &WorkflowService{
		requestService:    requestService,
		requestRepository: requestRepository,
		facultyRepository: facultyRepository,
		fileRepository:    fileRepository,
		storage:           storage,
	}
}

// Submit moves a draft into Research Center review. Submission runs the
// engine once so a malformed request is caught before any reviewer sees it.
func (s *WorkflowService) Submit(ctx context.Context, requestID, submitterID int64) (*models.DefenseRequest, error) {
	req, err := s.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Stage != models.StageDraft {
		return nil, apperrors.ErrInvalidStage
	}
	if req.SubmittedByID != submitterID {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.requestService.evaluateRequest(ctx, req); err != nil {
		return nil, err
	}

	if err := s.requestRepository.UpdateStage(ctx, requestID, models.StageResearchCenter); err != nil {
		return nil, err
	}
	if err := s.requestRepository.RecordStageAction(ctx, repositories.StageAction{
		RequestID: requestID,
		Stage:     models.StageDraft,
		Action:    ActionSubmitted,
		ActedByID: submitterID,
	}); err != nil {
		return nil, err
	}

	logger.Info().Int64("requestId", requestID).Msg("Defense request submitted")
	return s.requestRepository.GetByID(ctx, requestID)
}

// Approve records the actor's approval and advances the request. The actor's
// role must match the request's current stage. A flagged request cannot pass
// Research Center without a justification document; final approval at the
// Budget stage writes each member's contributed appearances into history.
func (s *WorkflowService) Approve(ctx context.Context, requestID int64, actor *models.User, remarks string) (*models.DefenseRequest, error) {
	req, eval, err := s.loadForAction(ctx, requestID, actor)
	if err != nil {
		return nil, err
	}

	if req.Stage == models.StageResearchCenter && eval.RequiresJustification && req.JustificationFileID == nil {
		return nil, apperrors.ErrJustificationMissing
	}

	next, err := NextStage(req.Stage)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepository.UpdateStage(ctx, requestID, next); err != nil {
		return nil, err
	}
	if err := s.requestRepository.RecordStageAction(ctx, repositories.StageAction{
		RequestID: requestID,
		Stage:     req.Stage,
		Action:    ActionApproved,
		Remarks:   remarks,
		ActedByID: actor.ID,
	}); err != nil {
		return nil, err
	}

	if next == models.StageApproved {
		if err := s.recordAppearances(ctx, req, eval); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int64("requestId", requestID).
		Str("from", string(req.Stage)).
		Str("to", string(next)).
		Msg("Defense request approved")

	return s.requestRepository.GetByID(ctx, requestID)
}

// Reject terminates the request at the actor's stage.
func (s *WorkflowService) Reject(ctx context.Context, requestID int64, actor *models.User, remarks string) (*models.DefenseRequest, error) {
	req, _, err := s.loadForAction(ctx, requestID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepository.UpdateStage(ctx, requestID, models.StageRejected); err != nil {
		return nil, err
	}
	if err := s.requestRepository.RecordStageAction(ctx, repositories.StageAction{
		RequestID: requestID,
		Stage:     req.Stage,
		Action:    ActionRejected,
		Remarks:   remarks,
		ActedByID: actor.ID,
	}); err != nil {
		return nil, err
	}

	logger.Info().Int64("requestId", requestID).Str("stage", string(req.Stage)).Msg("Defense request rejected")
	return s.requestRepository.GetByID(ctx, requestID)
}

// loadForAction loads the request and its fresh evaluation, checking that the
// actor's role matches the request's current stage.
func (s *WorkflowService) loadForAction(ctx context.Context, requestID int64, actor *models.User) (*models.DefenseRequest, *engine.Evaluation, error) {
	stage, ok := StageForRole(actor.RoleType)
	if !ok {
		return nil, nil, apperrors.ErrPermissionDenied
	}

	req, err := s.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.Stage != stage {
		return nil, nil, apperrors.ErrInvalidStage
	}

	eval, err := s.requestService.evaluateRequest(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return req, eval, nil
}

// recordAppearances writes each member's contributed count for this request
// into the appearance history, once per member across all their roles.
func (s *WorkflowService) recordAppearances(ctx context.Context, req *models.DefenseRequest, eval *engine.Evaluation) error {
	contributed := make(map[int64]int)
	for _, entry := range eval.Entries {
		contributed[entry.MemberID] += entry.Contributed
	}

	for memberID, count := range contributed {
		if err := s.facultyRepository.AddAppearances(ctx, memberID, req.SchoolYear, req.Semester, count); err != nil {
			return err
		}
	}
	return nil
}

// AttachJustification stores an uploaded justification document and links it
// to the request. Uploads are accepted while the request is still editable or
// waiting at Research Center; later stages review the document, they do not
// replace it.
func (s *WorkflowService) AttachJustification(ctx context.Context, requestID, uploaderID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	req, err := s.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Stage != models.StageDraft && req.Stage != models.StageResearchCenter {
		return nil, apperrors.ErrInvalidStage
	}

	fileURL, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     s.storage.FullPath(fileURL),
		FileURL:      fileURL,
		FileSize:     fileHeader.Size,
		FileType:     fileHeader.Header.Get("Content-Type"),
		ResourceType: models.ResourceTypeJustification,
		ResourceID:   requestID,
		UploadedByID: uploaderID,
	}
	if err := s.fileRepository.Create(ctx, file); err != nil {
		_ = s.storage.DeleteFile(fileURL)
		return nil, err
	}

	if err := s.requestRepository.SetJustificationFile(ctx, requestID, file.ID); err != nil {
		return nil, err
	}

	logger.Info().Int64("requestId", requestID).Int64("fileId", file.ID).Msg("Justification document attached")
	return file, nil
}
