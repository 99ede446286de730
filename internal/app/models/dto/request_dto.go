package dto

import (
	"fmt"

	"github.com/mlreyes/panelhub/internal/app/models"
)

// StudentGroupRequest is one defense unit in a create/update payload.
type StudentGroupRequest struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title" binding:"required" example:"Effects of Blended Learning on Retention"`
	Students []string `json:"students" binding:"required,min=1"`
}

// PanelAssignmentRequest assigns a faculty member to roles within one group,
// or shared across all groups when groupScope is 0. Role labels may use the
// Adviser/Chairman synonyms; they are normalized before anything else sees
// them.
type PanelAssignmentRequest struct {
	FacultyMemberID int64    `json:"facultyMemberId" binding:"required" example:"3"`
	Roles           []string `json:"roles" binding:"required,min=1" example:"Chairperson"`
	GroupScope      int64    `json:"groupScope" example:"1"`
}

// CreateDefenseRequestRequest is the payload for creating or replacing the
// editable content of a defense request.
type CreateDefenseRequestRequest struct {
	DepartmentID int64                    `json:"departmentId" binding:"required" example:"2"`
	ProgramLevel string                   `json:"programLevel" binding:"required" example:"Tertiary"`
	DefenseType  string                   `json:"defenseType" binding:"required" example:"Final"`
	SchoolYear   string                   `json:"schoolYear" binding:"required" example:"2025-2026"`
	Semester     string                   `json:"semester" binding:"required" example:"1"`
	Groups       []StudentGroupRequest    `json:"groups" binding:"required,min=1"`
	Assignments  []PanelAssignmentRequest `json:"assignments"`
}

// ToModel normalizes the payload into a DefenseRequest. Group IDs are assigned
// 1-based in payload order when absent; role and enum labels are parsed to
// their canonical values.
func (r *CreateDefenseRequestRequest) ToModel() (*models.DefenseRequest, error) {
	level, err := models.ParseProgramLevel(r.ProgramLevel)
	if err != nil {
		return nil, err
	}
	defense, err := models.ParseDefenseType(r.DefenseType)
	if err != nil {
		return nil, err
	}

	req := &models.DefenseRequest{
		DepartmentID: r.DepartmentID,
		ProgramLevel: level,
		DefenseType:  defense,
		SchoolYear:   r.SchoolYear,
		Semester:     r.Semester,
	}

	for i, group := range r.Groups {
		id := group.ID
		if id == 0 {
			id = int64(i + 1)
		}
		req.Groups = append(req.Groups, models.StudentGroup{
			ID:       id,
			Title:    group.Title,
			Students: group.Students,
		})
	}

	for _, assignment := range r.Assignments {
		parsed := models.PanelAssignment{
			Member:     models.FacultyMember{ID: assignment.FacultyMemberID},
			GroupScope: assignment.GroupScope,
		}
		for _, label := range assignment.Roles {
			role, err := models.ParseRole(label)
			if err != nil {
				return nil, fmt.Errorf("assignment for faculty member %d: %w", assignment.FacultyMemberID, err)
			}
			parsed.Roles = append(parsed.Roles, role)
		}
		req.Assignments = append(req.Assignments, parsed)
	}

	return req, nil
}

// StageActionRequest carries an approver's decision on a request.
type StageActionRequest struct {
	Remarks string `json:"remarks" example:"Cleared by the Research Center"`
}
