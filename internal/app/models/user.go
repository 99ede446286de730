package models

import "time"

// User defines an account that can sign in, based on the 'users' table.
// Reviewer accounts carry the role matching the workflow stage they act on.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"rc@university.edu.ph"`
	Password  string    `json:"-" db:"password"`
	FullName  string    `json:"fullName" db:"full_name" example:"Research Center Office"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"RESEARCH_CENTER"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
