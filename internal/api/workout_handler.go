// internal/api/workout_handler.go
package api

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workouts service.WorkoutLogService
	now      func() time.Time
}

func NewWorkoutHandler(workouts service.WorkoutLogService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts, now: time.Now}
}

// LogWorkoutRequest is the body of PUT /workouts/:date.
type LogWorkoutRequest struct {
	SplitID     string                     `json:"splitId"`
	SplitName   string                     `json:"splitName"`
	WorkoutType string                     `json:"workoutType" binding:"required"`
	Exercises   []domain.CompletedExercise `json:"exercises"`
	Notes       string                     `json:"notes"`
}

// GetToday godoc
// @Summary Today's planned workout from the active split
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date query string false "Override today (YYYY-MM-DD)"
// @Success 200 {object} service.TodaysWorkout
// @Router /workouts/today [get]
func (h *WorkoutHandler) GetToday(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	now := h.now()
	if q := c.Query("date"); q != "" {
		day, err := domain.ParseWorkoutDate(q)
		if err != nil {
			respondError(c, service.ErrInvalidDate)
			return
		}
		now = day
	}

	today, err := h.workouts.TodaysWorkout(c.Request.Context(), userID, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

// LogWorkout godoc
// @Summary Log (or replace) the workout done on a date
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Param workout body LogWorkoutRequest true "What was done"
// @Success 200 {object} domain.CompletedWorkout
// @Router /workouts/{date} [put]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	logged, err := h.workouts.LogWorkout(c.Request.Context(), userID, domain.CompletedWorkout{
		Date:        c.Param("date"),
		SplitID:     req.SplitID,
		SplitName:   req.SplitName,
		WorkoutType: req.WorkoutType,
		Exercises:   req.Exercises,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logged)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	workout, err := h.workouts.GetCompletedWorkout(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.workouts.DeleteCompletedWorkout(c.Request.Context(), userID, c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHistory returns the history rows logged on a date.
func (h *WorkoutHandler) GetHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	rows, err := h.workouts.History(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetExerciseHistory returns every logged set of one exercise, oldest first.
func (h *WorkoutHandler) GetExerciseHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	rows, err := h.workouts.ExerciseHistory(c.Request.Context(), userID, c.Param("exerciseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportHistory godoc
// @Summary Export a day's history to object storage
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Success 201 {object} service.HistoryExport
// @Failure 501 {object} gin.H "Exports not configured"
// @Router /history/{date}/export [post]
func (h *WorkoutHandler) ExportHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	export, err := h.workouts.ExportHistory(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}
