package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/server/middleware"
)

// StatsService is the rollup engine behind the stats routes.
type StatsService interface {
	Overview(ctx context.Context, owner primitive.ObjectID, now time.Time) (models.Overview, error)
	Dashboard(ctx context.Context, owner primitive.ObjectID, now time.Time) (models.Dashboard, error)
	DayRollup(ctx context.Context, owner primitive.ObjectID, day time.Time) (models.DayRollup, error)
	WeeklyRollup(ctx context.Context, owner primitive.ObjectID, now time.Time) ([]models.WeeklyDay, error)
	RecentActivity(now time.Time) []models.Activity
}

// StatsHandler serves the rollup endpoints.
type StatsHandler struct {
	svc    StatsService
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc StatsService, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// Overview returns the owner's headline counters.
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context(), middleware.OwnerID(c), time.Now())
	if err != nil {
		h.logger.Error("failed building overview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": overview})
}

// Dashboard returns the monthly wage chart and today's headcount.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context(), middleware.OwnerID(c), time.Now())
	if err != nil {
		h.logger.Error("failed building dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"monthlyWages": dashboard.MonthlyWages,
		"today":        dashboard.Today,
	})
}

// Today returns the per-workplace rollup for the current reference-timezone
// day.
func (h *StatsHandler) Today(c *gin.Context) {
	rollup, err := h.svc.DayRollup(c.Request.Context(), middleware.OwnerID(c), time.Now())
	if err != nil {
		h.logger.Error("failed building day rollup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, rollup)
}

// Weekly returns the trailing 7-day rollup.
func (h *StatsHandler) Weekly(c *gin.Context) {
	week, err := h.svc.WeeklyRollup(c.Request.Context(), middleware.OwnerID(c), time.Now())
	if err != nil {
		h.logger.Error("failed building weekly rollup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, week)
}

// RecentActivity returns the placeholder activity feed.
func (h *StatsHandler) RecentActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RecentActivity(time.Now()))
}
