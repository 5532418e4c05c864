package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/server/middleware"
)

// SalaryService produces the flat monthly salary rows.
type SalaryService interface {
	SalarySummary(ctx context.Context, owner primitive.ObjectID, month, year int) ([]models.SalaryRow, error)
}

// SalaryHandler serves the monthly salary summary.
type SalaryHandler struct {
	payroll SalaryService
	logger  *zap.Logger
}

// NewSalaryHandler constructs the HTTP handler adapter.
func NewSalaryHandler(payroll SalaryService, logger *zap.Logger) *SalaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalaryHandler{payroll: payroll, logger: logger}
}

// Summary returns one row per employee with wages netted against loans and
// deductions.
func (h *SalaryHandler) Summary(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}

	rows, err := h.payroll.SalarySummary(c.Request.Context(), middleware.OwnerID(c), month, year)
	if err != nil {
		h.logger.Error("failed building salary summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
