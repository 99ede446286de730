package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances.
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	FacultyRepository    *FacultyRepository
	RequestRepository    *RequestRepository
	UserRepository       *UserRepository
	FileRepository       *FileRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(db),
		FacultyRepository:    NewFacultyRepository(db),
		RequestRepository:    NewRequestRepository(db),
		UserRepository:       NewUserRepository(db),
		FileRepository:       NewFileRepository(db),
	}
}
