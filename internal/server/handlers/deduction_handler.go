package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/dates"
	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
	"wagebook-backend/internal/server/middleware"
)

// DeductionStore is the slice of the entity store behind deduction CRUD.
type DeductionStore interface {
	CreateDeduction(ctx context.Context, ded models.Deduction) (models.Deduction, error)
	DeductionsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Deduction, error)
	DeductionByID(ctx context.Context, owner, id primitive.ObjectID) (models.Deduction, error)
	UpdateDeduction(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Deduction, error)
	DeleteDeduction(ctx context.Context, owner, id primitive.ObjectID) error
}

// DeductionHandler serves owner-scoped deduction management.
type DeductionHandler struct {
	store  DeductionStore
	logger *zap.Logger
}

// NewDeductionHandler constructs the HTTP handler adapter.
func NewDeductionHandler(store DeductionStore, logger *zap.Logger) *DeductionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeductionHandler{store: store, logger: logger}
}

// List returns all deductions of the owner.
func (h *DeductionHandler) List(c *gin.Context) {
	deductions, err := h.store.DeductionsByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed listing deductions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if deductions == nil {
		deductions = []models.Deduction{}
	}
	c.JSON(http.StatusOK, deductions)
}

// Get returns a single deduction.
func (h *DeductionHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deduction id"})
		return
	}

	ded, err := h.store.DeductionByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Deduction not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed fetching deduction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, ded)
}

// Create adds a new deduction.
func (h *DeductionHandler) Create(c *gin.Context) {
	var req moneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	employeeID, msg := req.validate()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	ded, err := h.store.CreateDeduction(c.Request.Context(), models.Deduction{
		Owner:      middleware.OwnerID(c),
		EmployeeID: employeeID,
		Amount:     *req.Amount,
		Remark:     req.Remark,
		Date:       req.Date,
	})
	if err != nil {
		h.logger.Error("failed creating deduction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deduction added", "deduction": ded})
}

// Update patches the given deduction; absent fields are left untouched,
// except the remark which is always replaced.
func (h *DeductionHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deduction id"})
		return
	}

	var req moneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	set := bson.M{"remark": req.Remark}
	if req.EmployeeID != "" {
		employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
			return
		}
		set["employeeId"] = employeeID
	}
	if req.Amount != nil {
		set["amount"] = *req.Amount
	}
	if req.Date != "" {
		if _, err := dates.ParseDay(req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format (YYYY-MM-DD)"})
			return
		}
		set["date"] = req.Date
	}

	ded, err := h.store.UpdateDeduction(c.Request.Context(), middleware.OwnerID(c), id, set)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Deduction not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating deduction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deduction updated", "deduction": ded})
}

// Delete removes the deduction.
func (h *DeductionHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deduction id"})
		return
	}

	err = h.store.DeleteDeduction(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Deduction not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting deduction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deduction deleted"})
}
