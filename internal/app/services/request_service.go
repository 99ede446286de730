package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlreyes/panelhub/internal/app/engine"
	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/config"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
	"github.com/mlreyes/panelhub/internal/pkg/logger"
)

// RequestService manages defense requests and runs the rule engine over them.
type RequestService struct {
	requestRepository    *repositories.RequestRepository
	facultyRepository    *repositories.FacultyRepository
	departmentRepository *repositories.DepartmentRepository
	rateTable            *engine.RateTable
	resetBoundary        config.ResetBoundary
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepository *repositories.RequestRepository,
	facultyRepository *repositories.FacultyRepository,
	departmentRepository *repositories.DepartmentRepository,
	rateTable *engine.RateTable,
	resetBoundary config.ResetBoundary,
) *RequestService {
	return &RequestService{
		requestRepository:    requestRepository,
		facultyRepository:    facultyRepository,
		departmentRepository: departmentRepository,
		rateTable:            rateTable,
		resetBoundary:        resetBoundary,
	}
}

// CreateRequest validates and stores a new draft request.
func (s *RequestService) CreateRequest(ctx context.Context, submitterID int64, req *models.DefenseRequest) (*models.DefenseRequest, error) {
	if err := s.validateContent(ctx, req); err != nil {
		return nil, err
	}

	req.ReferenceCode = uuid.NewString()
	req.Stage = models.StageDraft
	req.SubmittedByID = submitterID

	if err := s.requestRepository.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", req.ID).
		Str("referenceCode", req.ReferenceCode).
		Msg("Defense request created")

	return s.requestRepository.GetByID(ctx, req.ID)
}

// validateContent checks the request's references before it is stored: the
// department must exist, every assignment must point at a known faculty member,
// and every group scope must be 0 or match a group in the payload.
func (s *RequestService) validateContent(ctx context.Context, req *models.DefenseRequest) error {
	if _, err := s.departmentRepository.GetByID(ctx, req.DepartmentID); err != nil {
		return err
	}

	groupIDs := make(map[int64]bool, len(req.Groups))
	for _, group := range req.Groups {
		if group.ID <= 0 {
			return apperrors.NewBadRequestError(fmt.Sprintf("group id %d is invalid; ids are 1-based", group.ID))
		}
		if groupIDs[group.ID] {
			return apperrors.NewBadRequestError(fmt.Sprintf("duplicate group id %d", group.ID))
		}
		groupIDs[group.ID] = true
	}

	for i := range req.Assignments {
		assignment := &req.Assignments[i]
		if !assignment.IsShared() && !groupIDs[assignment.GroupScope] {
			return apperrors.NewBadRequestError(fmt.Sprintf(
				"assignment for faculty member %d references group %d which is not in the request",
				assignment.Member.ID, assignment.GroupScope))
		}
		member, err := s.facultyRepository.GetByID(ctx, assignment.Member.ID)
		if err != nil {
			return err
		}
		assignment.Member = *member
	}

	return nil
}

// GetRequest retrieves a request with all its content.
func (s *RequestService) GetRequest(ctx context.Context, id int64) (*models.DefenseRequest, error) {
	return s.requestRepository.GetByID(ctx, id)
}

// ListRequests retrieves requests with pagination and filters.
func (s *RequestService) ListRequests(ctx context.Context, offset uint64, limit int, filters map[string]interface{}) ([]*models.DefenseRequest, int64, error) {
	return s.requestRepository.List(ctx, offset, limit, filters)
}

// UpdateRequest replaces the content of a draft. Submitted requests are
// read-only for everyone, including their submitter.
func (s *RequestService) UpdateRequest(ctx context.Context, id, submitterID int64, updated *models.DefenseRequest) (*models.DefenseRequest, error) {
	existing, err := s.requestRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Stage != models.StageDraft {
		return nil, apperrors.ErrRequestNotEditable
	}
	if existing.SubmittedByID != submitterID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.validateContent(ctx, updated); err != nil {
		return nil, err
	}

	updated.ID = id
	if err := s.requestRepository.ReplaceContent(ctx, updated); err != nil {
		return nil, err
	}
	return s.requestRepository.GetByID(ctx, id)
}

// DeleteRequest removes a draft.
func (s *RequestService) DeleteRequest(ctx context.Context, id, submitterID int64) error {
	existing, err := s.requestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Stage != models.StageDraft {
		return apperrors.ErrRequestNotEditable
	}
	if existing.SubmittedByID != submitterID {
		return apperrors.ErrPermissionDenied
	}
	return s.requestRepository.Delete(ctx, id)
}

// Evaluate loads the request, fills in each member's historical appearance
// count for the configured reset window, and runs the rule engine. The
// evaluation is recomputed on every call; it is never stored.
func (s *RequestService) Evaluate(ctx context.Context, id int64) (*models.DefenseRequest, *engine.Evaluation, error) {
	req, err := s.requestRepository.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	eval, err := s.evaluateRequest(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return req, eval, nil
}

func (s *RequestService) evaluateRequest(ctx context.Context, req *models.DefenseRequest) (*engine.Evaluation, error) {
	historical := make(map[int64]int)
	for i := range req.Assignments {
		assignment := &req.Assignments[i]
		count, ok := historical[assignment.Member.ID]
		if !ok {
			var err error
			count, err = s.facultyRepository.HistoricalCount(
				ctx, assignment.Member.ID, req.SchoolYear, req.Semester, s.resetBoundary)
			if err != nil {
				return nil, err
			}
			historical[assignment.Member.ID] = count
		}
		assignment.Member.HistoricalAppearances = count
	}

	return engine.Evaluate(req, s.rateTable)
}
