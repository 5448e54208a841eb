// internal/api/split_handler.go
package api

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/service"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// defaultSplitLength is the end date offset when the form leaves it empty.
const defaultSplitLength = 7 * 24 * time.Hour

type SplitHandler struct {
	splits *service.SplitController
	now    func() time.Time
}

func NewSplitHandler(splits *service.SplitController) *SplitHandler {
	return &SplitHandler{splits: splits, now: time.Now}
}

// --- DTOs ---

// CreateSplitRequest is the creation form. Days maps a weekday to its
// workout type; days left out are rest days. Schedule, when given, is used
// as-is instead.
type CreateSplitRequest struct {
	Name      string                       `json:"name" binding:"required"`
	StartDate string                       `json:"startDate"` // M/D/YYYY, defaults to today
	EndDate   string                       `json:"endDate"`   // M/D/YYYY, defaults to a week after start
	Days      map[string]string            `json:"days"`
	Schedule  map[string]domain.WorkoutDay `json:"schedule"`
}

// SplitResponse is a split with its derived status.
type SplitResponse struct {
	domain.WorkoutSplit
	Status      domain.SplitStatus `json:"status"`
	StatusLabel string             `json:"statusLabel"`
}

func MapSplitToResponse(s domain.WorkoutSplit) SplitResponse {
	status := s.Status()
	return SplitResponse{WorkoutSplit: s, Status: status, StatusLabel: status.Label()}
}

func MapSplitsToResponse(splits []domain.WorkoutSplit) []SplitResponse {
	resp := make([]SplitResponse, len(splits))
	for i, s := range splits {
		resp[i] = MapSplitToResponse(s)
	}
	return resp
}

// buildSplit turns the form into a new, inactive split.
func (req CreateSplitRequest) buildSplit(now time.Time) (domain.WorkoutSplit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.WorkoutSplit{}, domain.ErrEmptySplitName
	}

	start := now
	if req.StartDate != "" {
		t, err := time.Parse(domain.SplitDateLayout, req.StartDate)
		if err != nil {
			return domain.WorkoutSplit{}, fmt.Errorf("startDate must look like 1/31/2025")
		}
		start = t
	}
	end := start.Add(defaultSplitLength)
	if req.EndDate != "" {
		t, err := time.Parse(domain.SplitDateLayout, req.EndDate)
		if err != nil {
			return domain.WorkoutSplit{}, fmt.Errorf("endDate must look like 1/31/2025")
		}
		end = t
	}
	if end.Before(start) {
		return domain.WorkoutSplit{}, fmt.Errorf("endDate cannot be before startDate")
	}

	schedule := req.Schedule
	if schedule == nil {
		var err error
		schedule, err = domain.NewSchedule(req.Days)
		if err != nil {
			return domain.WorkoutSplit{}, err
		}
	}

	return domain.WorkoutSplit{
		Name:      name,
		Schedule:  schedule,
		StartDate: domain.FormatSplitDate(start),
		EndDate:   domain.FormatSplitDate(end),
		IsActive:  false,
	}, nil
}

// --- Handler Methods ---

// ListSplits godoc
// @Summary List the user's workout splits, newest first
// @Tags Splits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SplitResponse
// @Router /splits [get]
func (h *SplitHandler) ListSplits(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	c.JSON(http.StatusOK, MapSplitsToResponse(h.splits.Refresh(c.Request.Context(), userID)))
}

// CreateSplit godoc
// @Summary Create a workout split
// @Tags Splits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param split body CreateSplitRequest true "Split form"
// @Success 201 {object} SplitResponse
// @Success 202 {object} gin.H "Accepted but not stored"
// @Failure 400 {object} gin.H "Invalid form"
// @Router /splits [post]
func (h *SplitHandler) CreateSplit(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	split, err := req.buildSplit(h.now())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.splits.Create(c.Request.Context(), userID, split)
	if err != nil {
		respondError(c, err)
		return
	}
	if saved.ID == "" {
		// Store failure swallowed by the error policy
		c.JSON(http.StatusAccepted, gin.H{"message": "Split was not saved"})
		return
	}
	c.JSON(http.StatusCreated, MapSplitToResponse(saved))
}

// DeleteSplit removes a split. Deleting a missing split succeeds.
func (h *SplitHandler) DeleteSplit(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.splits.Remove(c.Request.Context(), userID, c.Param("splitId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CycleSplitStatus godoc
// @Summary Advance a split inactive -> planned -> active -> inactive
// @Tags Splits
// @Produce json
// @Security BearerAuth
// @Param splitId path string true "Split ID"
// @Success 200 {object} SplitResponse
// @Failure 404 {object} gin.H "Split not found"
// @Router /splits/{splitId}/status [post]
func (h *SplitHandler) CycleSplitStatus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	ctx := c.Request.Context()
	split, err := h.splits.Lookup(ctx, userID, c.Param("splitId"))
	if err != nil {
		respondError(c, err)
		return
	}

	next, err := h.splits.CycleStatus(ctx, userID, split)
	if err != nil {
		respondError(c, err)
		return
	}
	if next.ID == "" {
		c.JSON(http.StatusAccepted, MapSplitToResponse(split))
		return
	}
	c.JSON(http.StatusOK, MapSplitToResponse(next))
}
