package models

import "time"

// StudentGroup is one defense unit inside a request: a research title and the
// students defending it. Group IDs are 1-based within a request; 0 is reserved
// as the shared scope sentinel.
type StudentGroup struct {
	ID       int64    `json:"id" db:"id"`
	Title    string   `json:"title" db:"title" example:"Effects of Blended Learning on Retention"`
	Students []string `json:"students" example:"Dela Cruz, Juan"`
}

// PanelAssignment associates one faculty member with one or more roles, scoped
// either to a single student group or shared across every group in the request
// (GroupScope == SharedGroupScope).
type PanelAssignment struct {
	ID         int64         `json:"id" db:"id"`
	Member     FacultyMember `json:"member"`
	Roles      []Role        `json:"roles"`
	GroupScope int64         `json:"groupScope" db:"group_scope" example:"1"`
}

// IsShared reports whether the assignment covers every group of the request.
func (a PanelAssignment) IsShared() bool {
	return a.GroupScope == SharedGroupScope
}

// DefenseRequest is the aggregate root routed through the approval pipeline.
// Groups and assignments are editable while the request is in Draft; after
// submission the engine recomputes evaluations read-only at every stage.
type DefenseRequest struct {
	ID                  int64             `json:"id" db:"id"`
	ReferenceCode       string            `json:"referenceCode" db:"reference_code" example:"b5c7f6e2-1f0a-4f3d-9a34-8f2d1c0b7a61"`
	DepartmentID        int64             `json:"departmentId" db:"department_id"`
	ProgramLevel        ProgramLevel      `json:"programLevel" db:"program_level"`
	DefenseType         DefenseType       `json:"defenseType" db:"defense_type"`
	SchoolYear          string            `json:"schoolYear" db:"school_year" example:"2025-2026"`
	Semester            string            `json:"semester" db:"semester" example:"1"`
	Stage               WorkflowStage     `json:"stage" db:"stage"`
	JustificationFileID *int64            `json:"justificationFileId,omitempty" db:"justification_file_id"`
	SubmittedByID       int64             `json:"submittedById" db:"submitted_by_id"`
	Groups              []StudentGroup    `json:"groups"`
	Assignments         []PanelAssignment `json:"assignments"`
	CreatedAt           time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time         `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// GroupByID returns the group with the given ID, or nil when absent.
func (r *DefenseRequest) GroupByID(id int64) *StudentGroup {
	for i := range r.Groups {
		if r.Groups[i].ID == id {
			return &r.Groups[i]
		}
	}
	return nil
}
