package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booklog-backend/internal/shared/middleware"
	"booklog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupReadRoutes(v1, c)
		setupSemesterRoutes(v1, c)
		setupStatisticsRoutes(v1, c)
		setupCommunityRoutes(v1, c)
		setupCompletionistRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
		books.GET("/:id/reads", c.ReadHandler.ListBookReads)
	}
}

// ========================================
// READ ROUTES
// ========================================
func setupReadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reads := v1.Group("/reads")
	reads.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		reads.POST("", c.ReadHandler.CreateRead)
		reads.GET("", c.ReadHandler.ListReads)
		reads.GET("/:id", c.ReadHandler.GetRead)
		reads.PUT("/:id", c.ReadHandler.UpdateRead)
		reads.DELETE("/:id", c.ReadHandler.DeleteRead)
	}
}

// ========================================
// SEMESTER ROUTES
// ========================================
func setupSemesterRoutes(v1 *gin.RouterGroup, c *container.Container) {
	semesters := v1.Group("/semesters")
	semesters.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		semesters.GET("", c.SemesterHandler.ListSemesters)
		semesters.GET("/current", c.SemesterHandler.GetCurrent)
		semesters.GET("/for-date", c.SemesterHandler.GetForDate)
		semesters.GET("/:number", c.SemesterHandler.GetSemester)
		semesters.PUT("", c.SemesterHandler.UpsertAnnotation)
		semesters.DELETE("/:number", c.SemesterHandler.DeleteAnnotation)
	}
}

// ========================================
// STATISTICS ROUTES
// ========================================
func setupStatisticsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	stats := v1.Group("/statistics")
	stats.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		stats.GET("/summary", c.StatisticsHandler.Summary)
		stats.GET("/reading", c.StatisticsHandler.ReadingStats)
		stats.GET("/points", c.StatisticsHandler.PointsTrend)
		stats.GET("/format-breakdown", c.StatisticsHandler.FormatBreakdown)
		stats.GET("/book-type-breakdown", c.StatisticsHandler.BookTypeBreakdown)
		stats.GET("/genre-breakdown", c.StatisticsHandler.GenreBreakdown)
		stats.GET("/author-frequency", c.StatisticsHandler.AuthorFrequency)
		stats.GET("/review-rate", c.StatisticsHandler.ReviewRate)
		stats.GET("/comment-rate", c.StatisticsHandler.CommentRate)
	}
}

// ========================================
// COMMUNITY ROUTES
// ========================================
func setupCommunityRoutes(v1 *gin.RouterGroup, c *container.Container) {
	community := v1.Group("/community")
	community.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		community.GET("/reads-in-common", c.StatisticsHandler.ReadsInCommon)
		community.GET("/similar-sentiment", c.StatisticsHandler.SimilarSentiment)
		community.GET("/conjugation", c.StatisticsHandler.ConjugationHighlights)
	}
}

// ========================================
// COMPLETIONIST ROUTES
// ========================================
func setupCompletionistRoutes(v1 *gin.RouterGroup, c *container.Container) {
	completionist := v1.Group("/completionist")
	completionist.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		completionist.GET("/authors", c.CompletionistHandler.ListProgress)
		completionist.GET("/authors/:id", c.CompletionistHandler.AuthorDetail)
		completionist.POST("/authors/:id/sync", c.CompletionistHandler.SyncAuthor)
		completionist.POST("/goals", c.CompletionistHandler.SetGoal)
		completionist.GET("/achievements", c.CompletionistHandler.ListAchievements)
		completionist.GET("/leaderboard", c.CompletionistHandler.Leaderboard)
		completionist.POST("/sync", c.CompletionistHandler.TriggerSync)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
