package api

import (
	"alcyxob/gympumped/internal/service"
	"alcyxob/gympumped/internal/session"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	sessions session.Provider,
	splits *service.SplitController,
	workouts service.WorkoutLogService,
) {
	// Held splits belong to a signed-in user; drop them on sign-out.
	sessions.Subscribe(func(ev session.Event) {
		if ev.Kind == session.SignedOut {
			splits.Forget(ev.Identity.UID)
			log.Printf("INFO: User %s signed out", ev.Identity.UID)
		}
	})

	authHandler := NewAuthHandler(sessions)
	splitHandler := NewSplitHandler(splits)
	workoutHandler := NewWorkoutHandler(workouts)

	authMiddleware := AuthMiddleware(sessions)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Split Routes ---
		splitGroup := protected.Group("/splits")
		{
			splitGroup.GET("", splitHandler.ListSplits)
			splitGroup.POST("", splitHandler.CreateSplit)
			splitGroup.DELETE("/:splitId", splitHandler.DeleteSplit)
			splitGroup.POST("/:splitId/status", splitHandler.CycleSplitStatus)
		}

		// --- Workout Log Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/today", workoutHandler.GetToday)
			workoutGroup.PUT("/:date", workoutHandler.LogWorkout)
			workoutGroup.GET("/:date", workoutHandler.GetWorkout)
			workoutGroup.DELETE("/:date", workoutHandler.DeleteWorkout)
		}

		historyGroup := protected.Group("/history")
		{
			historyGroup.GET("/:date", workoutHandler.GetHistory)
			historyGroup.POST("/:date/export", workoutHandler.ExportHistory)
		}

		protected.GET("/exercises/:exerciseId/history", workoutHandler.GetExerciseHistory)
	}
}
