package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/dates"
	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/server/middleware"
)

// AttendanceStore is the slice of the entity store behind the attendance
// endpoints.
type AttendanceStore interface {
	AttendanceByDay(ctx context.Context, owner primitive.ObjectID, start, next time.Time) ([]models.Attendance, error)
	BulkUpsertAttendance(ctx context.Context, owner primitive.ObjectID, records []models.Attendance) error
}

// SummaryService produces the monthly employee summaries.
type SummaryService interface {
	MonthlySummary(ctx context.Context, owner primitive.ObjectID, month, year int, employeeID *primitive.ObjectID) ([]models.EmployeeSummary, error)
}

// AttendanceHandler serves the day view, the bulk upsert and the monthly
// summary.
type AttendanceHandler struct {
	store   AttendanceStore
	payroll SummaryService
	logger  *zap.Logger
}

// NewAttendanceHandler constructs the HTTP handler adapter.
func NewAttendanceHandler(store AttendanceStore, payroll SummaryService, logger *zap.Logger) *AttendanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceHandler{store: store, payroll: payroll, logger: logger}
}

// ByDate returns the owner's attendance records for one UTC calendar day.
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date query parameter required"})
		return
	}
	day, err := dates.ParseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format (YYYY-MM-DD)"})
		return
	}

	start, next := dates.DayRange(day)
	records, err := h.store.AttendanceByDay(c.Request.Context(), middleware.OwnerID(c), start, next)
	if err != nil {
		h.logger.Error("failed loading day attendance", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}
	c.JSON(http.StatusOK, records)
}

type attendanceRecordRequest struct {
	EmployeeID  string   `json:"employee_id"`
	WorkplaceID string   `json:"workplace_id"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	Wage        *float64 `json:"wage"`
}

// Save bulk-upserts attendance records keyed by (employee, workplace, date).
// Replaying the same payload leaves exactly one record per key.
func (h *AttendanceHandler) Save(c *gin.Context) {
	var reqs []attendanceRecordRequest
	if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Attendance records array required"})
		return
	}

	records := make([]models.Attendance, 0, len(reqs))
	for _, req := range reqs {
		if req.EmployeeID == "" || req.WorkplaceID == "" || req.Date == "" || req.Status == "" || req.Wage == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields in attendance record"})
			return
		}
		if !models.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid attendance status"})
			return
		}

		employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
			return
		}
		workplaceID, err := primitive.ObjectIDFromHex(req.WorkplaceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workplace id"})
			return
		}
		day, err := dates.ParseDay(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format (YYYY-MM-DD)"})
			return
		}

		records = append(records, models.Attendance{
			EmployeeID:  employeeID,
			WorkplaceID: workplaceID,
			Date:        day,
			Status:      req.Status,
			Wage:        *req.Wage,
		})
	}

	if err := h.store.BulkUpsertAttendance(c.Request.Context(), middleware.OwnerID(c), records); err != nil {
		h.logger.Error("failed saving attendance", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance saved", "attendance": reqs})
}

// Summary returns the monthly per-employee breakdown.
func (h *AttendanceHandler) Summary(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}

	var employeeID *primitive.ObjectID
	if raw := c.Query("employeeId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
			return
		}
		employeeID = &id
	}

	summaries, err := h.payroll.MonthlySummary(c.Request.Context(), middleware.OwnerID(c), month, year, employeeID)
	if err != nil {
		h.logger.Error("failed building monthly summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// monthYearParams parses and validates the month and year query parameters,
// writing the 400 response itself when they are missing or malformed.
func monthYearParams(c *gin.Context) (int, int, bool) {
	rawMonth := c.Query("month")
	rawYear := c.Query("year")
	if rawMonth == "" || rawYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Month and Year are required"})
		return 0, 0, false
	}

	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month"})
		return 0, 0, false
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1000 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
		return 0, 0, false
	}
	return month, year, true
}
