package router

import (
	"github.com/palak-raj09/eil-project/internal/config"
	"github.com/palak-raj09/eil-project/internal/handler"
	"github.com/palak-raj09/eil-project/internal/mailer"
	"github.com/palak-raj09/eil-project/internal/middleware"
	"github.com/palak-raj09/eil-project/internal/models"
	"github.com/palak-raj09/eil-project/internal/recaptcha"
	"github.com/palak-raj09/eil-project/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	sessions := session.NewManager(db, cfg.Session.TTLHours)
	verifier := recaptcha.NewGoogleVerifier(cfg.Recaptcha.Secret)
	m := mailer.NewSMTPMailer(cfg.SMTP, cfg.App.FrontendURL)

	// ====== API ======
	api := r.Group("/api")

	api.GET("/health", handler.Health)

	// 登录/注册/密码重置接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, sessions, verifier, m, cfg.Session)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(sessions, db, cfg.Session))

	protected.GET("/user", handler.GetUser)

	// 看板按角色隔离
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/management", middleware.RequireRole(models.RoleManagement), handler.ManagementDashboard)
	dashboard.GET("/employee", middleware.RequireRole(models.RoleEmployee), handler.EmployeeDashboard)
	dashboard.GET("/trainee", middleware.RequireRole(models.RoleTrainee), handler.TraineeDashboard)

	// 登录审计导出（仅管理层）
	reportHandler := handler.NewReportHandler(db)
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(models.RoleManagement))
	reports.GET("/login-attempts.csv", reportHandler.ExportLoginAttemptsCSV)
	reports.GET("/login-attempts.xlsx", reportHandler.ExportLoginAttemptsXLSX)

	return r
}
