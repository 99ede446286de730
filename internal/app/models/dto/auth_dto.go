package dto

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"rc@university.edu.ph"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
	UserID    int64  `json:"userId"`
	RoleType  string `json:"roleType" example:"RESEARCH_CENTER"`
}

// RegisterRequest creates a new account. Reviewer accounts are normally
// seeded; registration is for faculty submitters.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}
