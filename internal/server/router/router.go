package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wagebook-backend/internal/server/handlers"
	"wagebook-backend/internal/server/middleware"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Employee   *handlers.EmployeeHandler
	Workplace  *handlers.WorkplaceHandler
	Loan       *handlers.LoanHandler
	Deduction  *handlers.DeductionHandler
	Attendance *handlers.AttendanceHandler
	Salary     *handlers.SalaryHandler
	Stats      *handlers.StatsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, verifier middleware.TokenVerifier, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/signup", h.Auth.Signup)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.GET("/validate", middleware.Auth(verifier), h.Auth.Validate)
	}

	api := r.Group("/api", middleware.Auth(verifier))
	{
		api.GET("/profile", h.Auth.GetProfile)
		api.PUT("/profile", h.Auth.UpdateProfile)

		api.GET("/employees", h.Employee.List)
		api.POST("/employees", h.Employee.Create)
		api.PUT("/employees/:id", h.Employee.Update)
		api.DELETE("/employees/:id", h.Employee.Delete)

		api.GET("/workplaces", h.Workplace.List)
		api.GET("/workplaces/:id", h.Workplace.Get)
		api.POST("/workplaces", h.Workplace.Create)
		api.PUT("/workplaces/:id", h.Workplace.Update)
		api.DELETE("/workplaces/:id", h.Workplace.Delete)

		api.GET("/loans", h.Loan.List)
		api.GET("/loans/:id", h.Loan.Get)
		api.POST("/loans", h.Loan.Create)
		api.PUT("/loans/:id", h.Loan.Update)
		api.DELETE("/loans/:id", h.Loan.Delete)

		api.GET("/deductions", h.Deduction.List)
		api.GET("/deductions/:id", h.Deduction.Get)
		api.POST("/deductions", h.Deduction.Create)
		api.PUT("/deductions/:id", h.Deduction.Update)
		api.DELETE("/deductions/:id", h.Deduction.Delete)

		api.GET("/attendance", h.Attendance.ByDate)
		api.POST("/attendance", h.Attendance.Save)
		api.GET("/attendance/summary", h.Attendance.Summary)

		api.GET("/salary/summary", h.Salary.Summary)

		api.GET("/stats", h.Stats.Overview)
		api.GET("/stats/dashboard", h.Stats.Dashboard)
		api.GET("/stats/today", h.Stats.Today)
		api.GET("/stats/weekly", h.Stats.Weekly)
		api.GET("/stats/recent-activity", h.Stats.RecentActivity)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
