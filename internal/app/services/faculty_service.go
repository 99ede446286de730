package services

import (
	"context"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/repositories"
)

// FacultyService manages faculty members and departments.
type FacultyService struct {
	facultyRepository    *repositories.FacultyRepository
	departmentRepository *repositories.DepartmentRepository
}

// NewFacultyService creates a new faculty service
func NewFacultyService(
	facultyRepository *repositories.FacultyRepository,
	departmentRepository *repositories.DepartmentRepository,
) *FacultyService {
	return &FacultyService{
		facultyRepository:    facultyRepository,
		departmentRepository: departmentRepository,
	}
}

// CreateFacultyMember registers a faculty member in a department.
func (s *FacultyService) CreateFacultyMember(ctx context.Context, fullName string, departmentID int64) (*models.FacultyMember, error) {
	if _, err := s.departmentRepository.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}

	member := &models.FacultyMember{
		FullName:     fullName,
		DepartmentID: departmentID,
	}
	if err := s.facultyRepository.Create(ctx, member); err != nil {
		return nil, err
	}
	return s.facultyRepository.GetByID(ctx, member.ID)
}

// GetFacultyMember retrieves a faculty member with department details.
func (s *FacultyService) GetFacultyMember(ctx context.Context, id int64) (*models.FacultyMember, error) {
	return s.facultyRepository.GetByID(ctx, id)
}

// ListFacultyMembers retrieves faculty members, optionally filtered by
// department.
func (s *FacultyService) ListFacultyMembers(ctx context.Context, departmentID int64) ([]*models.FacultyMember, error) {
	return s.facultyRepository.GetAll(ctx, departmentID)
}

// UpdateFacultyMember changes a member's name or department.
func (s *FacultyService) UpdateFacultyMember(ctx context.Context, id int64, fullName string, departmentID int64) (*models.FacultyMember, error) {
	if _, err := s.departmentRepository.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}

	member := &models.FacultyMember{
		ID:           id,
		FullName:     fullName,
		DepartmentID: departmentID,
	}
	if err := s.facultyRepository.Update(ctx, member); err != nil {
		return nil, err
	}
	return s.facultyRepository.GetByID(ctx, id)
}

// DeleteFacultyMember removes a faculty member.
func (s *FacultyService) DeleteFacultyMember(ctx context.Context, id int64) error {
	return s.facultyRepository.Delete(ctx, id)
}

// ListDepartments retrieves every department.
func (s *FacultyService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepository.GetAll(ctx)
}
