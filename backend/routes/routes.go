package routes

import (
	"time"

	"examprep-backend/backend/config"
	"examprep-backend/backend/controllers"
	"examprep-backend/backend/middleware"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	startedAt := time.Now()

	app.Get("/health", func(c *fiber.Ctx) error {
		return utils.SuccessMessage(c, fiber.StatusOK, "API is healthy", fiber.Map{
			"timestamp": time.Now().UTC(),
			"uptime":    time.Since(startedAt).String(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SuccessMessage(c, fiber.StatusOK, "Online Learning Platform API is running", fiber.Map{
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"auth":          "/api/auth",
				"courses":       "/api/courses",
				"educators":     "/api/educators",
				"lessons":       "/api/lessons",
				"liveClasses":   "/api/live-classes",
				"tests":         "/api/tests",
				"progress":      "/api/progress",
				"subscriptions": "/api/subscriptions",
			},
		})
	})

	authMiddleware := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuth(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/profile", authMiddleware, authController.GetProfile)
	auth.Put("/profile", authMiddleware, authController.UpdateProfile)
	auth.Post("/refresh", authMiddleware, authController.Refresh)
	auth.Post("/logout", authMiddleware, authController.Logout)
	auth.Get("/verify", authMiddleware, authController.Verify)

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses")
	courses.Get("/", optionalAuth, coursesController.GetAllCourses)
	courses.Get("/educator/:educatorId", optionalAuth, coursesController.GetCoursesByEducator)
	courses.Get("/exam/:targetExam", optionalAuth, coursesController.GetCoursesByExam)
	courses.Get("/search/:query", optionalAuth, coursesController.SearchCourses)
	courses.Get("/:id", optionalAuth, coursesController.GetCourseByID)
	courses.Post("/", authMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", authMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", authMiddleware, coursesController.DeleteCourse)

	// Educator routes
	educatorsController := controllers.NewEducatorsController(db, cfg)
	educators := app.Group("/api/educators")
	educators.Get("/", educatorsController.GetAllEducators)
	educators.Get("/:id", educatorsController.GetEducatorByID)
	educators.Get("/:id/courses", educatorsController.GetEducatorCourses)
	educators.Post("/", authMiddleware, educatorsController.CreateEducator)
	educators.Put("/:id", authMiddleware, educatorsController.UpdateEducator)
	educators.Delete("/:id", authMiddleware, educatorsController.DeleteEducator)

	// Lesson routes
	lessonsController := controllers.NewLessonsController(db, cfg)
	lessons := app.Group("/api/lessons")
	lessons.Get("/", optionalAuth, lessonsController.GetAllLessons)
	lessons.Get("/course/:courseId", optionalAuth, lessonsController.GetLessonsByCourse)
	lessons.Get("/:id", optionalAuth, lessonsController.GetLessonByID)
	lessons.Post("/", authMiddleware, lessonsController.CreateLesson)
	lessons.Put("/:id", authMiddleware, lessonsController.UpdateLesson)
	lessons.Delete("/:id", authMiddleware, lessonsController.DeleteLesson)

	// Live class routes
	liveClassesController := controllers.NewLiveClassesController(db, cfg)
	liveClasses := app.Group("/api/live-classes")
	liveClasses.Get("/", optionalAuth, liveClassesController.GetAllLiveClasses)
	liveClasses.Get("/course/:courseId", optionalAuth, liveClassesController.GetLiveClassesByCourse)
	liveClasses.Get("/:id", optionalAuth, liveClassesController.GetLiveClassByID)
	liveClasses.Post("/:id/register", authMiddleware, liveClassesController.RegisterForClass)
	liveClasses.Post("/", authMiddleware, liveClassesController.CreateLiveClass)
	liveClasses.Put("/:id", authMiddleware, liveClassesController.UpdateLiveClass)
	liveClasses.Delete("/:id", authMiddleware, liveClassesController.DeleteLiveClass)

	// Test routes
	testsController := controllers.NewTestsController(db, cfg)
	tests := app.Group("/api/tests")
	tests.Get("/", optionalAuth, testsController.GetAllTests)
	tests.Get("/course/:courseId", optionalAuth, testsController.GetTestsByCourse)
	tests.Get("/:id", optionalAuth, testsController.GetTestByID)
	tests.Post("/", authMiddleware, testsController.CreateTest)
	tests.Post("/:testId/questions", authMiddleware, testsController.AddTestQuestion)
	tests.Put("/:id", authMiddleware, testsController.UpdateTest)
	tests.Delete("/:id", authMiddleware, testsController.DeleteTest)

	// Progress routes, all authenticated
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Post("/", progressController.RecordProgress)
	progress.Get("/", progressController.GetUserProgress)
	progress.Get("/course/:courseId", progressController.GetCourseProgress)
	progress.Get("/course/:courseId/stats", progressController.GetCourseStats)
	progress.Put("/:id", progressController.UpdateProgress)

	// Subscription routes, all authenticated
	subscriptionsController := controllers.NewSubscriptionsController(db, cfg)
	ownership := middleware.ValidateSubscriptionOwnership(db)
	subscriptions := app.Group("/api/subscriptions", authMiddleware)
	subscriptions.Post("/", subscriptionsController.CreateSubscription)
	subscriptions.Get("/my-subscriptions", subscriptionsController.GetMySubscriptions)
	subscriptions.Get("/access/:courseId", subscriptionsController.CheckCourseAccess)
	subscriptions.Get("/admin/stats", subscriptionsController.GetSubscriptionStats)
	subscriptions.Get("/", subscriptionsController.GetAllSubscriptions)
	subscriptions.Get("/:id", ownership, subscriptionsController.GetSubscriptionByID)
	subscriptions.Patch("/:id/payment", ownership,
		middleware.CheckSubscriptionModifiable,
		middleware.ValidatePaymentStatusTransition,
		subscriptionsController.UpdatePayment)
	subscriptions.Patch("/:id/cancel", ownership, subscriptionsController.CancelSubscription)

	// Anything else is a 404
	app.Use(middleware.NotFoundHandler)
}
