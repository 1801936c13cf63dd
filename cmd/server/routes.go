package main

import (
	"net/http"
	"strings"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/interfaces/http/handlers"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "crowdfund-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	profileHandler  *handlers.ProfileHandler
	projectHandler  *handlers.ProjectHandler
	documentHandler *handlers.DocumentHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  gin.HandlerFunc
	optionalAuth    gin.HandlerFunc
	maxUploadBytes  int64
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		profile := api.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.GET("", d.profileHandler.Get)
			profile.PATCH("/investor", middleware.RequireRole(entities.UserRoleInvestor), d.profileHandler.UpdateInvestor)
			profile.PATCH("/company", middleware.RequireRole(entities.UserRoleCompany), d.profileHandler.UpdateCompany)
		}

		uploadLimit := middleware.BodyLimit(d.maxUploadBytes)

		projects := api.Group("/projects")
		{
			// Listing and reading are public; a valid token widens what is visible.
			projects.GET("", d.optionalAuth, d.projectHandler.List)
			projects.GET("/:id", d.optionalAuth, d.projectHandler.Get)

			owned := projects.Group("")
			owned.Use(d.authMiddleware)
			owned.POST("", middleware.RequireRole(entities.UserRoleCompany), middleware.IdempotencyMiddleware(), d.projectHandler.Create)
			owned.PUT("/:id", d.projectHandler.Update)
			owned.POST("/:id/submit", middleware.RequireRole(entities.UserRoleCompany), d.projectHandler.Submit)
			owned.POST("/:id/review", middleware.RequireAdmin(), d.projectHandler.Review)

			owned.POST("/:id/team", d.projectHandler.AddTeamMember)
			owned.DELETE("/:id/team/:memberId", d.projectHandler.RemoveTeamMember)
			owned.POST("/:id/faqs", d.projectHandler.AddFAQ)
			owned.DELETE("/:id/faqs/:faqId", d.projectHandler.RemoveFAQ)

			owned.POST("/:id/documents", uploadLimit, middleware.IdempotencyMiddleware(), d.documentHandler.UploadForProject)
			owned.GET("/:id/documents", d.documentHandler.ListForProject)
		}

		documents := api.Group("/documents")
		documents.Use(d.authMiddleware)
		{
			documents.POST("", uploadLimit, middleware.IdempotencyMiddleware(), d.documentHandler.UploadForUser)
			documents.GET("", d.documentHandler.ListForUser)
			documents.GET("/:id/download", d.documentHandler.Download)
			documents.DELETE("/:id", d.documentHandler.Delete)
			documents.PUT("/:id/verify", middleware.RequireAdmin(), d.documentHandler.Verify)
		}

		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/projects", d.adminHandler.ListProjects)
			admin.GET("/projects/:projectId", d.adminHandler.ProjectDetail)
			admin.PATCH("/projects/:projectId/status", d.adminHandler.ChangeStatus)
		}
	}
}

// applyCORSMiddleware echoes allowed origins and answers preflight requests.
func applyCORSMiddleware(r *gin.Engine, allowed string) {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (origins["*"] || origins[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", strings.Join([]string{
			"Content-Type",
			"Authorization",
			middleware.SessionHeader,
			middleware.RequestIDHeader,
			middleware.IdempotencyHeader,
		}, ", "))
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader+", Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, h http.Handler) {
	r.GET("/metrics", gin.WrapH(h))
}
