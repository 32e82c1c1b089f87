package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/coursehub/course-marketplace/docs"
	"github.com/coursehub/course-marketplace/internal/api/handler"
	"github.com/coursehub/course-marketplace/internal/api/middleware"
	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/service"
	"github.com/coursehub/course-marketplace/internal/infrastructure/config"
	mongorepo "github.com/coursehub/course-marketplace/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	courseRepo := mongorepo.NewCourseRepository(db)

	codec := service.NewJWTCodec(cfg.JWTSecret, 24*time.Hour)
	authService := service.NewAuthService(userRepo, codec, log)
	courseService := service.NewCourseService(courseRepo, userRepo, log)
	userService := service.NewUserService(userRepo, courseRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	userHandler := handler.NewUserHandler(userService)

	authGuard := middleware.Auth(codec, userRepo)
	instructorOnly := middleware.RequireRole(domain.RoleInstructor, domain.RoleAdmin)
	authLimiter := middleware.RateLimit(rdb, cfg.RateLimit.AuthPerMinute, log)

	// --- Auth routes (rate limited per client IP) ---
	auth := e.Group("/api/auth", authLimiter)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Course catalog ---
	courses := e.Group("/api/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/:id", courseHandler.Get)
	courses.POST("", courseHandler.Create, authGuard, instructorOnly)
	courses.PUT("/:id", courseHandler.Update, authGuard, instructorOnly)
	courses.DELETE("/:id", courseHandler.Delete, authGuard, instructorOnly)
	courses.POST("/:id/enroll", courseHandler.Enroll, authGuard)
	courses.POST("/:id/rate", courseHandler.Rate, authGuard)

	// --- Account routes ---
	users := e.Group("/api/users", authGuard)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/purchased-courses", userHandler.PurchasedCourses)
	users.GET("/created-courses", userHandler.CreatedCourses, instructorOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
