package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/config"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

// FacultyRepository handles database operations for faculty members and their
// appearance history.
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new faculty member
func (r *FacultyRepository) Create(ctx context.Context, member *models.FacultyMember) error {
	query := `
		INSERT INTO faculty_members (full_name, department_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, member.FullName, member.DepartmentID).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("error creating faculty member: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty member with their department.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.FacultyMember, error) {
	query := `
		SELECT fm.id, fm.full_name, fm.department_id, d.id, d.name, d.code
		FROM faculty_members fm
		JOIN departments d ON fm.department_id = d.id
		WHERE fm.id = $1
	`

	var member models.FacultyMember
	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FullName,
		&member.DepartmentID,
		&department.ID,
		&department.Name,
		&department.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty member: %w", err)
	}

	member.Department = &department
	return &member, nil
}

// GetAll retrieves faculty members, optionally filtered by department.
func (r *FacultyRepository) GetAll(ctx context.Context, departmentID int64) ([]*models.FacultyMember, error) {
	builder := r.sb.Select(
		"fm.id", "fm.full_name", "fm.department_id",
		"d.id", "d.name", "d.code",
	).
		From("faculty_members fm").
		Join("departments d ON fm.department_id = d.id").
		OrderBy("fm.full_name")

	if departmentID > 0 {
		builder = builder.Where(squirrel.Eq{"fm.department_id": departmentID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.FacultyMember
	for rows.Next() {
		var member models.FacultyMember
		var department models.Department
		if err := rows.Scan(
			&member.ID,
			&member.FullName,
			&member.DepartmentID,
			&department.ID,
			&department.Name,
			&department.Code,
		); err != nil {
			return nil, err
		}
		member.Department = &department
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// Update updates a faculty member's name and department.
func (r *FacultyRepository) Update(ctx context.Context, member *models.FacultyMember) error {
	query := `
		UPDATE faculty_members
		SET full_name = $1, department_id = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, member.FullName, member.DepartmentID, member.ID)
	if err != nil {
		return fmt.Errorf("error updating faculty member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyMemberNotFound
	}
	return nil
}

// Delete deletes a faculty member by ID
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM faculty_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting faculty member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyMemberNotFound
	}
	return nil
}

// HistoricalCount sums the member's recorded appearances within the window the
// reset boundary defines: the current semester, the current school year, or
// all recorded periods.
func (r *FacultyRepository) HistoricalCount(ctx context.Context, memberID int64, schoolYear, semester string, boundary config.ResetBoundary) (int, error) {
	builder := r.sb.Select("COALESCE(SUM(appearances), 0)").
		From("faculty_appearances").
		Where(squirrel.Eq{"faculty_member_id": memberID})

	switch boundary {
	case config.ResetPerSemester:
		builder = builder.Where(squirrel.Eq{"school_year": schoolYear, "semester": semester})
	case config.ResetPerSchoolYear:
		builder = builder.Where(squirrel.Eq{"school_year": schoolYear})
	case config.ResetNever:
		// All periods count.
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building appearance query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error summing appearances: %w", err)
	}
	return count, nil
}

// AddAppearances increments the member's appearance count for the given
// academic period. Called once per member when a request reaches final
// approval.
func (r *FacultyRepository) AddAppearances(ctx context.Context, memberID int64, schoolYear, semester string, count int) error {
	if count <= 0 {
		return nil
	}

	query := `
		INSERT INTO faculty_appearances (faculty_member_id, school_year, semester, appearances)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (faculty_member_id, school_year, semester)
		DO UPDATE SET appearances = faculty_appearances.appearances + EXCLUDED.appearances
	`

	if _, err := r.db.Exec(ctx, query, memberID, schoolYear, semester, count); err != nil {
		return fmt.Errorf("error recording appearances: %w", err)
	}
	return nil
}
