package router

import (
	"github.com/gin-gonic/gin"

	"civicfix/internal/domain"
	"civicfix/internal/handler"
	"civicfix/internal/middleware"
	"civicfix/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	officerH *handler.OfficerHandler,
	issueH *handler.IssueHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/send-otp", authH.SendOTP)
	auth.POST("/verify-otp", authH.VerifyOTP)
	auth.POST("/admin/login", authH.AdminLogin)

	// Officer registration is public; the account stays inactive until the
	// verification pipeline (or an admin) activates it.
	v1.POST("/officers/register", officerH.Register)

	// Citizen routes - require valid JWT
	issues := v1.Group("/issues")
	issues.Use(middleware.AuthMiddleware(authSvc))
	issues.POST("", issueH.Report)
	issues.GET("/mine", issueH.ListMine)
	issues.GET("/:id", issueH.Get)

	// Officer routes - department queue and status updates
	officer := v1.Group("/officer")
	officer.Use(middleware.AuthMiddleware(authSvc))
	officer.Use(middleware.RequireRole(domain.RoleOfficer))
	officer.GET("/issues", issueH.DepartmentQueue)
	officer.PATCH("/issues/:id/status", issueH.UpdateStatus)

	// Admin routes - officer review and issue oversight
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/officers", adminH.ListOfficers)
	admin.GET("/officers/export", adminH.ExportOfficers)
	admin.POST("/officers/:id/approve", adminH.ApproveOfficer)
	admin.POST("/officers/:id/reject", adminH.RejectOfficer)
	admin.GET("/issues", adminH.ListIssues)

	return r
}
