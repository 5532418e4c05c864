package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
	"wagebook-backend/internal/server/middleware"
)

// EmployeeStore is the slice of the entity store behind employee CRUD.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, emp models.Employee) (models.Employee, error)
	EmployeesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Employee, error)
	DeleteEmployee(ctx context.Context, owner, id primitive.ObjectID) error
}

// EmployeeHandler serves owner-scoped employee management.
type EmployeeHandler struct {
	store  EmployeeStore
	logger *zap.Logger
}

// NewEmployeeHandler constructs the HTTP handler adapter.
func NewEmployeeHandler(store EmployeeStore, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{store: store, logger: logger}
}

// List returns all employees of the owner.
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.store.EmployeesByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed listing employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	c.JSON(http.StatusOK, employees)
}

type createEmployeeRequest struct {
	Name     string   `json:"name"`
	JobTitle string   `json:"jobTitle"`
	Wage     *float64 `json:"wage"`
	Status   string   `json:"status"`
}

// Create adds a new employee.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Name == "" || req.JobTitle == "" || req.Wage == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, role and wage are required"})
		return
	}

	emp, err := h.store.CreateEmployee(c.Request.Context(), models.Employee{
		Owner:  middleware.OwnerID(c),
		Name:   req.Name,
		Role:   req.JobTitle,
		Wage:   *req.Wage,
		Status: req.Status,
	})
	if err != nil {
		h.logger.Error("failed creating employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee added", "employee": emp})
}

type updateEmployeeRequest struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Wage   *float64 `json:"wage"`
	Status string   `json:"status"`
}

// Update patches the given employee; absent fields are left untouched.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Role != "" {
		set["role"] = req.Role
	}
	if req.Wage != nil {
		set["wage"] = *req.Wage
	}
	if req.Status != "" {
		set["status"] = req.Status
	}

	emp, err := h.store.UpdateEmployee(c.Request.Context(), middleware.OwnerID(c), id, set)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee updated", "employee": emp})
}

// Delete removes the employee. Historical records keep their reference.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return
	}

	err = h.store.DeleteEmployee(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
