package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
	"wagebook-backend/internal/server/middleware"
)

// WorkplaceStore is the slice of the entity store behind workplace CRUD.
type WorkplaceStore interface {
	CreateWorkplace(ctx context.Context, wp models.Workplace) (models.Workplace, error)
	WorkplacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Workplace, error)
	WorkplaceByID(ctx context.Context, owner, id primitive.ObjectID) (models.Workplace, error)
	UpdateWorkplace(ctx context.Context, owner, id primitive.ObjectID, set bson.M) (models.Workplace, error)
	DeleteWorkplace(ctx context.Context, owner, id primitive.ObjectID) error
}

// WorkplaceHandler serves owner-scoped workplace management.
type WorkplaceHandler struct {
	store  WorkplaceStore
	logger *zap.Logger
}

// NewWorkplaceHandler constructs the HTTP handler adapter.
func NewWorkplaceHandler(store WorkplaceStore, logger *zap.Logger) *WorkplaceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkplaceHandler{store: store, logger: logger}
}

// List returns all workplaces of the owner.
func (h *WorkplaceHandler) List(c *gin.Context) {
	workplaces, err := h.store.WorkplacesByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed listing workplaces", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if workplaces == nil {
		workplaces = []models.Workplace{}
	}
	c.JSON(http.StatusOK, workplaces)
}

// Get returns a single workplace.
func (h *WorkplaceHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workplace id"})
		return
	}

	wp, err := h.store.WorkplaceByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workplace not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed fetching workplace", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, wp)
}

type workplaceRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Create adds a new workplace.
func (h *WorkplaceHandler) Create(c *gin.Context) {
	var req workplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Workplace name is required"})
		return
	}

	wp, err := h.store.CreateWorkplace(c.Request.Context(), models.Workplace{
		Owner:    middleware.OwnerID(c),
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
	})
	if err != nil {
		h.logger.Error("failed creating workplace", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workplace added", "workplace": wp})
}

// Update renames or relocates the workplace.
func (h *WorkplaceHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workplace id"})
		return
	}

	var req workplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Workplace name is required"})
		return
	}

	set := bson.M{"name": strings.TrimSpace(req.Name)}
	if strings.TrimSpace(req.Location) != "" {
		set["location"] = strings.TrimSpace(req.Location)
	}

	wp, err := h.store.UpdateWorkplace(c.Request.Context(), middleware.OwnerID(c), id, set)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workplace not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating workplace", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workplace updated", "workplace": wp})
}

// Delete removes the workplace.
func (h *WorkplaceHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workplace id"})
		return
	}

	err = h.store.DeleteWorkplace(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workplace not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting workplace", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workplace deleted"})
}
