package services

// Services is the container for all service instances.
type Services struct {
	AuthService     *AuthService
	FacultyService  *FacultyService
	RequestService  *RequestService
	WorkflowService *WorkflowService
}
