package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
	"github.com/mlreyes/panelhub/internal/pkg/auth"
	"github.com/mlreyes/panelhub/internal/pkg/dberrors"
)

// defaultDepartments is the institution's school roster.
var defaultDepartments = []models.Department{
	{Name: "School of Allied Medicine", Code: "SAM"},
	{Name: "School of Liberal Arts and Sciences", Code: "SLAS"},
	{Name: "School of Business and Accountancy", Code: "SBA"},
	{Name: "School of Education", Code: "SED"},
	{Name: "School of Engineering and Architecture", Code: "SEA"},
	{Name: "School of Criminal Justice", Code: "SCJ"},
}

// defaultReviewers are the pipeline office accounts, one per review stage.
// Their passwords must be rotated on first deployment.
var defaultReviewers = []models.User{
	{Email: "research.center@university.edu.ph", FullName: "Research Center Office", RoleType: models.RoleResearchCenter},
	{Email: "vpaa@university.edu.ph", FullName: "Office of the VPAA", RoleType: models.RoleVPAA},
	{Email: "dean@university.edu.ph", FullName: "Office of the Dean", RoleType: models.RoleDean},
	{Email: "budget@university.edu.ph", FullName: "Budget Office", RoleType: models.RoleBudget},
}

const defaultReviewerPassword = "ChangeMe123!"

// CreateDefaultData seeds the department roster and the reviewer accounts.
// Existing rows are left untouched; individual failures are collected so one
// bad row does not block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := repositories.NewDepartmentRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (departments, reviewer accounts)...")
	var finalErr error

	for _, department := range defaultDepartments {
		dept := department
		if err := departmentRepo.Create(ctx, &dept); err != nil {
			if dberrors.IsUniqueViolation(err) {
				continue
			}
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	hashed, err := auth.HashPassword(defaultReviewerPassword)
	if err != nil {
		return errors.Join(finalErr, err)
	}

	for _, reviewer := range defaultReviewers {
		user := reviewer
		user.Password = hashed
		user.IsActive = true
		if err := userRepo.Create(ctx, &user); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("email", user.Email).Msg("Error creating reviewer account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
