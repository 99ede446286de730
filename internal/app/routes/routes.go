package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mlreyes/panelhub/internal/app/controllers"
	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/middleware"
)

// reviewerRoles lists the accounts allowed to act on review stages. Which
// stage each one may actually act on is enforced by the workflow service.
var reviewerRoles = []models.RoleType{
	models.RoleResearchCenter,
	models.RoleVPAA,
	models.RoleDean,
	models.RoleBudget,
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	facultyController *controllers.FacultyController,
	requestController *controllers.RequestController,
	workflowController *controllers.WorkflowController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/departments", facultyController.ListDepartments)

		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", facultyController.ListFacultyMembers)
			faculty.GET("/:id", facultyController.GetFacultyMember)

			// Faculty roster changes are reviewer territory.
			facultyAdmin := faculty.Group("")
			facultyAdmin.Use(authMiddleware.RoleRequired(reviewerRoles...))
			{
				facultyAdmin.POST("", facultyController.CreateFacultyMember)
				facultyAdmin.PUT("/:id", facultyController.UpdateFacultyMember)
				facultyAdmin.DELETE("/:id", facultyController.DeleteFacultyMember)
			}
		}

		requests := authenticated.Group("/requests")
		{
			requests.GET("", requestController.ListRequests)
			requests.GET("/:id", requestController.GetRequest)
			requests.GET("/:id/evaluation", requestController.EvaluateRequest)

			// Drafting and submitting belong to faculty accounts.
			submitter := requests.Group("")
			submitter.Use(authMiddleware.RoleRequired(models.RoleFaculty))
			{
				submitter.POST("", requestController.CreateRequest)
				submitter.PUT("/:id", requestController.UpdateRequest)
				submitter.DELETE("/:id", requestController.DeleteRequest)
				submitter.POST("/:id/submit", workflowController.SubmitRequest)
				submitter.POST("/:id/justification", workflowController.UploadJustification)
			}

			reviewer := requests.Group("")
			reviewer.Use(authMiddleware.RoleRequired(reviewerRoles...))
			{
				reviewer.POST("/:id/approve", workflowController.ApproveRequest)
				reviewer.POST("/:id/reject", workflowController.RejectRequest)
			}
		}
	}
}
