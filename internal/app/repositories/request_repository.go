package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

// StageAction records one approval decision for the audit trail.
type StageAction struct {
	RequestID int64
	Stage     models.WorkflowStage
	Action    string
	Remarks   string
	ActedByID int64
}

// RequestRepository handles database operations for defense requests, their
// student groups and panel assignments.
type RequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the request with its groups and assignments in one
// transaction.
func (r *RequestRepository) Create(ctx context.Context, req *models.DefenseRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO defense_requests
			(reference_code, department_id, program_level, defense_type, school_year, semester, stage, submitted_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		req.ReferenceCode, req.DepartmentID, req.ProgramLevel, req.DefenseType,
		req.SchoolYear, req.Semester, req.Stage, req.SubmittedByID,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating defense request: %w", err)
	}

	if err := r.insertContent(ctx, tx, req); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// insertContent writes the groups and assignments of a request.
func (r *RequestRepository) insertContent(ctx context.Context, tx pgx.Tx, req *models.DefenseRequest) error {
	for i := range req.Groups {
		group := &req.Groups[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO student_groups (request_id, group_no, title, students)
			VALUES ($1, $2, $3, $4)`,
			req.ID, group.ID, group.Title, group.Students,
		)
		if err != nil {
			return fmt.Errorf("error creating student group: %w", err)
		}
	}

	for i := range req.Assignments {
		assignment := &req.Assignments[i]
		roles := make([]string, len(assignment.Roles))
		for j, role := range assignment.Roles {
			roles[j] = string(role)
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO panel_assignments (request_id, faculty_member_id, group_scope, roles)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			req.ID, assignment.Member.ID, assignment.GroupScope, roles,
		).Scan(&assignment.ID)
		if err != nil {
			return fmt.Errorf("error creating panel assignment: %w", err)
		}
	}

	return nil
}

// GetByID loads the full request aggregate: base row, department, groups and
// assignments with their faculty members. Historical appearance counts are
// filled in by the service layer, which knows the reset boundary.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.DefenseRequest, error) {
	query := `
		SELECT dr.id, dr.reference_code, dr.department_id, dr.program_level, dr.defense_type,
			dr.school_year, dr.semester, dr.stage, dr.justification_file_id, dr.submitted_by_id,
			dr.created_at, dr.updated_at,
			d.id, d.name, d.code
		FROM defense_requests dr
		JOIN departments d ON dr.department_id = d.id
		WHERE dr.id = $1
	`

	var req models.DefenseRequest
	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.ReferenceCode, &req.DepartmentID, &req.ProgramLevel, &req.DefenseType,
		&req.SchoolYear, &req.Semester, &req.Stage, &req.JustificationFileID, &req.SubmittedByID,
		&req.CreatedAt, &req.UpdatedAt,
		&department.ID, &department.Name, &department.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving defense request: %w", err)
	}
	req.Department = &department

	if err := r.loadGroups(ctx, &req); err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, &req); err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *RequestRepository) loadGroups(ctx context.Context, req *models.DefenseRequest) error {
	rows, err := r.db.Query(ctx, `
		SELECT group_no, title, students
		FROM student_groups
		WHERE request_id = $1
		ORDER BY group_no`, req.ID)
	if err != nil {
		return fmt.Errorf("error loading student groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var group models.StudentGroup
		if err := rows.Scan(&group.ID, &group.Title, &group.Students); err != nil {
			return err
		}
		req.Groups = append(req.Groups, group)
	}
	return rows.Err()
}

func (r *RequestRepository) loadAssignments(ctx context.Context, req *models.DefenseRequest) error {
	rows, err := r.db.Query(ctx, `
		SELECT pa.id, pa.group_scope, pa.roles,
			fm.id, fm.full_name, fm.department_id
		FROM panel_assignments pa
		JOIN faculty_members fm ON pa.faculty_member_id = fm.id
		WHERE pa.request_id = $1
		ORDER BY pa.id`, req.ID)
	if err != nil {
		return fmt.Errorf("error loading panel assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var assignment models.PanelAssignment
		var roles []string
		if err := rows.Scan(
			&assignment.ID, &assignment.GroupScope, &roles,
			&assignment.Member.ID, &assignment.Member.FullName, &assignment.Member.DepartmentID,
		); err != nil {
			return err
		}
		for _, role := range roles {
			assignment.Roles = append(assignment.Roles, models.Role(role))
		}
		req.Assignments = append(req.Assignments, assignment)
	}
	return rows.Err()
}

// List retrieves requests with pagination and optional filtering by
// department, stage and school year.
func (r *RequestRepository) List(ctx context.Context, offset uint64, limit int, filters map[string]interface{}) ([]*models.DefenseRequest, int64, error) {
	whereCondition := squirrel.And{}
	if departmentID, ok := filters["departmentId"]; ok {
		whereCondition = append(whereCondition, squirrel.Eq{"dr.department_id": departmentID})
	}
	if stage, ok := filters["stage"]; ok {
		whereCondition = append(whereCondition, squirrel.Eq{"dr.stage": stage})
	}
	if schoolYear, ok := filters["schoolYear"]; ok {
		whereCondition = append(whereCondition, squirrel.Eq{"dr.school_year": schoolYear})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("defense_requests dr")
	if len(whereCondition) > 0 {
		countBuilder = countBuilder.Where(whereCondition)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting defense requests: %w", err)
	}

	builder := r.sb.Select(
		"dr.id", "dr.reference_code", "dr.department_id", "dr.program_level", "dr.defense_type",
		"dr.school_year", "dr.semester", "dr.stage", "dr.justification_file_id", "dr.submitted_by_id",
		"dr.created_at", "dr.updated_at",
		"d.name", "d.code",
	).
		From("defense_requests dr").
		Join("departments d ON dr.department_id = d.id").
		OrderBy("dr.created_at DESC").
		Offset(offset).
		Limit(uint64(limit))
	if len(whereCondition) > 0 {
		builder = builder.Where(whereCondition)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []*models.DefenseRequest
	for rows.Next() {
		var req models.DefenseRequest
		var department models.Department
		if err := rows.Scan(
			&req.ID, &req.ReferenceCode, &req.DepartmentID, &req.ProgramLevel, &req.DefenseType,
			&req.SchoolYear, &req.Semester, &req.Stage, &req.JustificationFileID, &req.SubmittedByID,
			&req.CreatedAt, &req.UpdatedAt,
			&department.Name, &department.Code,
		); err != nil {
			return nil, 0, err
		}
		department.ID = req.DepartmentID
		req.Department = &department
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ReplaceContent rewrites the groups and assignments of a draft request.
func (r *RequestRepository) ReplaceContent(ctx context.Context, req *models.DefenseRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE defense_requests
		SET department_id = $1, program_level = $2, defense_type = $3,
			school_year = $4, semester = $5, updated_at = NOW()
		WHERE id = $6`,
		req.DepartmentID, req.ProgramLevel, req.DefenseType,
		req.SchoolYear, req.Semester, req.ID)
	if err != nil {
		return fmt.Errorf("error updating defense request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM panel_assignments WHERE request_id = $1`, req.ID); err != nil {
		return fmt.Errorf("error clearing panel assignments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM student_groups WHERE request_id = $1`, req.ID); err != nil {
		return fmt.Errorf("error clearing student groups: %w", err)
	}

	if err := r.insertContent(ctx, tx, req); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateStage moves the request to a new workflow stage.
func (r *RequestRepository) UpdateStage(ctx context.Context, id int64, stage models.WorkflowStage) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE defense_requests SET stage = $1, updated_at = NOW() WHERE id = $2`,
		stage, id)
	if err != nil {
		return fmt.Errorf("error updating request stage: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// SetJustificationFile attaches a justification document to the request.
func (r *RequestRepository) SetJustificationFile(ctx context.Context, id, fileID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE defense_requests SET justification_file_id = $1, updated_at = NOW() WHERE id = $2`,
		fileID, id)
	if err != nil {
		return fmt.Errorf("error attaching justification file: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// RecordStageAction appends an approval decision to the audit trail.
func (r *RequestRepository) RecordStageAction(ctx context.Context, action StageAction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stage_actions (request_id, stage, action, remarks, acted_by_id)
		VALUES ($1, $2, $3, $4, $5)`,
		action.RequestID, action.Stage, action.Action, action.Remarks, action.ActedByID)
	if err != nil {
		return fmt.Errorf("error recording stage action: %w", err)
	}
	return nil
}

// Delete removes a request; groups and assignments cascade.
func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM defense_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting defense request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}
