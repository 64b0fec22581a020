package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/servicedesk-v2/backend/config"
	"github.com/pageza/servicedesk-v2/backend/internal/api"
	"github.com/pageza/servicedesk-v2/backend/internal/middleware"
	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/service"
)

// Handlers bundles the API handlers wired into the router.
type Handlers struct {
	Auth      *api.AuthHandler
	Requests  *api.RequestHandler
	Admin     *api.AdminHandler
	Category  *api.CategoryHandler
	Feedback  *api.FeedbackHandler
	Dashboard *api.DashboardHandler
}

// SetupRouter configures the application routes. The role guards are
// composed here, at registration time: /user routes require exactly the
// USER role and /admin routes exactly ADMIN.
func SetupRouter(cfg *config.Config, authService service.IAuthService, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler(), middleware.CORS(cfg.CORSOrigins))

	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)

	user := v1.Group("/user")
	user.Use(middleware.AuthMiddleware(authService), middleware.RequireRole(models.RoleUser))
	{
		h.Requests.RegisterRoutes(user)
		h.Category.RegisterUserRoutes(user)
		h.Dashboard.RegisterUserRoutes(user)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireRole(models.RoleAdmin))
	{
		h.Admin.RegisterRoutes(admin)
		h.Category.RegisterAdminRoutes(admin)
		h.Feedback.RegisterAdminRoutes(admin)
		h.Dashboard.RegisterAdminRoutes(admin)
	}

	return router
}
