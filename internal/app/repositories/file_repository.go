package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

// FileRepository handles database operations for uploaded files.
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts file metadata after the bytes have been stored.
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (file_name, file_path, file_url, file_size, file_type, resource_type, resource_id, uploaded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		file.FileName, file.FilePath, file.FileURL, file.FileSize, file.FileType,
		file.ResourceType, file.ResourceID, file.UploadedByID,
	).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating file record: %w", err)
	}
	return nil
}

// GetByID retrieves file metadata by ID.
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, file_name, file_path, file_url, file_size, file_type, resource_type, resource_id, uploaded_by_id, created_at
		FROM files
		WHERE id = $1
	`
	var file models.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID, &file.FileName, &file.FilePath, &file.FileURL, &file.FileSize,
		&file.FileType, &file.ResourceType, &file.ResourceID, &file.UploadedByID, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file: %w", err)
	}
	return &file, nil
}

// Delete removes file metadata.
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
