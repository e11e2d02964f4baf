package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/handlers"
	admin_handlers "github.com/sahilchouksey/career-compass-api/handlers/admin"
	assessment_handlers "github.com/sahilchouksey/career-compass-api/handlers/assessment"
	auth_handlers "github.com/sahilchouksey/career-compass-api/handlers/auth"
	career_handlers "github.com/sahilchouksey/career-compass-api/handlers/career"
	careerfit_handlers "github.com/sahilchouksey/career-compass-api/handlers/careerfit"
	course_handlers "github.com/sahilchouksey/career-compass-api/handlers/course"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/report"
	"github.com/sahilchouksey/career-compass-api/utils"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"go.uber.org/zap"
)

// Dependencies are the long-lived services the routes are served by
type Dependencies struct {
	JWT         *auth.JWTManager
	Lockouts    middleware.LockoutStore // nil disables brute force protection
	Assessments *services.AssessmentService
	CareerFit   *services.CareerFitService
	Analytics   *services.AnalyticsService
	Reports     *report.Builder
	Security    middleware.SecurityConfig
	Log         *zap.Logger
}

// DefaultSecurity is the rate limit applied when none is configured
func DefaultSecurity(allowedOrigins string) middleware.SecurityConfig {
	return middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
		RequestLogging:    true,
	}
}

func SetupRoutes(app *fiber.App, store database.Storage, deps *Dependencies) {
	db := store.DB()
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if deps.Lockouts != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(deps.Lockouts)
	}

	authMiddleware := middleware.NewAuthMiddleware(deps.JWT, db)

	authHandler := auth_handlers.NewAuthHandler(db, deps.JWT, bruteForceProtection, deps.Analytics, log)
	assessmentHandler := assessment_handlers.NewAssessmentHandler(deps.Assessments, deps.Analytics, log)
	careerHandler := career_handlers.NewCareerHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	careerFitHandler := careerfit_handlers.NewCareerFitHandler(deps.CareerFit, deps.Reports, deps.Analytics, log)
	insightsHandler := admin_handlers.NewInsightsHandler(db, deps.Assessments, deps.CareerFit, deps.Analytics, log)

	middleware.SetupSecurity(app, deps.Security)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Career catalog (public)
	careers := api.Group("/careers")
	careers.Get("/", careerHandler.ListCareers)
	careers.Get("/:slug", careerHandler.GetCareer)

	// Course catalog (public)
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:slug", courseHandler.GetCourse)

	// Assessments; progress is registered before :slug
	assessments := api.Group("/assessments")
	assessments.Get("/", assessmentHandler.ListAssessments)
	assessments.Get("/progress", authMiddleware.Required(), assessmentHandler.GetProgress)
	assessments.Get("/:slug", assessmentHandler.GetAssessment)
	assessments.Post("/:slug/attempts", authMiddleware.Required(), assessmentHandler.StartAttempt)

	attempts := api.Group("/attempts", authMiddleware.Required())
	attempts.Put("/:id/responses", assessmentHandler.SaveResponses)
	attempts.Post("/:id/complete", assessmentHandler.CompleteAttempt)
	attempts.Get("/:id/results", assessmentHandler.GetResults)

	// Career fit (protected)
	careerFit := api.Group("/career-fit", authMiddleware.Required())
	careerFit.Get("/", careerFitHandler.GetAnalysis)
	careerFit.Get("/export.csv", careerFitHandler.ExportCSV)
	careerFit.Get("/report.pdf", careerFitHandler.DownloadReport)
	careerFit.Post("/report", careerFitHandler.PublishReport)
	careerFit.Get("/careers/:slug", careerFitHandler.GetCareerFit)
	careerFit.Get("/careers/:slug/learning-path", careerFitHandler.GetLearningPath)

	// Staff routes: counselors read, admins manage
	staff := api.Group("/admin", authMiddleware.Required(), middleware.RequireStaff())
	staff.Get("/dashboard", insightsHandler.GetDashboard)
	staff.Get("/careers/top", insightsHandler.GetTopCareers)
	staff.Get("/assessments/stats", insightsHandler.GetAssessmentStats)
	staff.Get("/users", utils.MakeHTTPHandleFunc(admin_handlers.ListUsers, store))
	staff.Get("/users/:id", utils.MakeHTTPHandleFunc(admin_handlers.GetUser, store))
	staff.Get("/users/:id/career-fit", insightsHandler.GetUserCareerFit)
	staff.Get("/cron-logs", middleware.RequireAdmin(), utils.MakeHTTPHandleFunc(admin_handlers.ListCronLogs, store))
	staff.Put("/users/:id/role", middleware.RequireAdmin(), utils.MakeHTTPHandleFunc(admin_handlers.UpdateUserRole, store))
	staff.Post("/users/:id/reset-password", middleware.RequireAdmin(), utils.MakeHTTPHandleFunc(admin_handlers.ResetUserPassword, store))
}
