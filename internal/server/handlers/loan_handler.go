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

// LoanStore is the slice of the entity store behind loan CRUD.
type LoanStore interface {
	CreateLoan(ctx context.Context, loan models.Loan) (models.Loan, error)
	LoansByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Loan, error)
	LoanByID(ctx context.Context, owner, id primitive.ObjectID) (models.Loan, error)
	UpdateLoan(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Loan, error)
	DeleteLoan(ctx context.Context, owner, id primitive.ObjectID) error
}

// LoanHandler serves owner-scoped loan management.
type LoanHandler struct {
	store  LoanStore
	logger *zap.Logger
}

// NewLoanHandler constructs the HTTP handler adapter.
func NewLoanHandler(store LoanStore, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{store: store, logger: logger}
}

// List returns all loans of the owner.
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.store.LoansByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed listing loans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	c.JSON(http.StatusOK, loans)
}

// Get returns a single loan.
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
		return
	}

	loan, err := h.store.LoanByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Loan not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed fetching loan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, loan)
}

type moneyRequest struct {
	EmployeeID string   `json:"employeeId"`
	Amount     *float64 `json:"amount"`
	Remark     string   `json:"remark"`
	Date       string   `json:"date"`
}

// validate checks the required fields and the YYYY-MM-DD date format, and
// resolves the employee id.
func (r moneyRequest) validate() (primitive.ObjectID, string) {
	if r.EmployeeID == "" || r.Amount == nil || r.Date == "" {
		return primitive.NilObjectID, "Missing required fields"
	}
	employeeID, err := primitive.ObjectIDFromHex(r.EmployeeID)
	if err != nil {
		return primitive.NilObjectID, "Invalid employee id"
	}
	if _, err := dates.ParseDay(r.Date); err != nil {
		return primitive.NilObjectID, "Invalid date format (YYYY-MM-DD)"
	}
	return employeeID, ""
}

// Create adds a new loan.
func (h *LoanHandler) Create(c *gin.Context) {
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

	loan, err := h.store.CreateLoan(c.Request.Context(), models.Loan{
		Owner:      middleware.OwnerID(c),
		EmployeeID: employeeID,
		Amount:     *req.Amount,
		Remark:     req.Remark,
		Date:       req.Date,
	})
	if err != nil {
		h.logger.Error("failed creating loan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan added", "loan": loan})
}

// Update patches the given loan; absent fields are left untouched, except the
// remark which is always replaced.
func (h *LoanHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
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

	loan, err := h.store.UpdateLoan(c.Request.Context(), middleware.OwnerID(c), id, set)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Loan not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating loan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan updated", "loan": loan})
}

// Delete removes the loan.
func (h *LoanHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
		return
	}

	err = h.store.DeleteLoan(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Loan not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting loan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted"})
}
