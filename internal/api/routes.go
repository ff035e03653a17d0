package api

import (
	"alcyxob/run-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
) {

	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Training Plan Routes ---
		// Athletes and coaches share the same surface: every plan is scoped
		// to its owner, so no role restriction is needed here.
		planGroup := protected.Group("/plans")
		{
			// POST /api/v1/plans/validate - dry-run configuration check
			planGroup.POST("/validate", planHandler.ValidateConfiguration)

			// POST /api/v1/plans - generate and store a new plan
			planGroup.POST("", planHandler.GeneratePlan)
			// GET /api/v1/plans - list the caller's plans
			planGroup.GET("", planHandler.ListPlans)

			// POST /api/v1/plans/compare - diff two stored plans
			planGroup.POST("/compare", planHandler.ComparePlans)

			// GET /api/v1/plans/{id} - full plan payload
			planGroup.GET("/:id", planHandler.GetPlan)
			// DELETE /api/v1/plans/{id}
			planGroup.DELETE("/:id", planHandler.DeletePlan)

			// POST /api/v1/plans/{id}/regenerate - rebuild from a new configuration
			planGroup.POST("/:id/regenerate", planHandler.RegeneratePlan)
			// POST /api/v1/plans/{id}/export - JSON snapshot to object storage
			planGroup.POST("/:id/export", planHandler.ExportPlan)
		}
	}
}
