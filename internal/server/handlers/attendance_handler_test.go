package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/server/middleware"
)

type fakeAttendanceStore struct {
	attendanceByDay      func(owner primitive.ObjectID, start, next time.Time) ([]models.Attendance, error)
	bulkUpsertAttendance func(owner primitive.ObjectID, records []models.Attendance) error
}

func (f *fakeAttendanceStore) AttendanceByDay(_ context.Context, owner primitive.ObjectID, start, next time.Time) ([]models.Attendance, error) {
	return f.attendanceByDay(owner, start, next)
}

func (f *fakeAttendanceStore) BulkUpsertAttendance(_ context.Context, owner primitive.ObjectID, records []models.Attendance) error {
	return f.bulkUpsertAttendance(owner, records)
}

type fakeSummaryService struct {
	monthlySummary func(owner primitive.ObjectID, month, year int, employeeID *primitive.ObjectID) ([]models.EmployeeSummary, error)
}

func (f *fakeSummaryService) MonthlySummary(_ context.Context, owner primitive.ObjectID, month, year int, employeeID *primitive.ObjectID) ([]models.EmployeeSummary, error) {
	return f.monthlySummary(owner, month, year, employeeID)
}

// withOwner seeds the authenticated owner the way middleware.Auth would.
func withOwner(owner primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxOwnerID, owner)
		c.Next()
	}
}

func attendanceRouter(owner primitive.ObjectID, h *AttendanceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withOwner(owner))
	r.GET("/api/attendance", h.ByDate)
	r.POST("/api/attendance", h.Save)
	r.GET("/api/attendance/summary", h.Summary)
	return r
}

func TestByDate_RequiresDateParam(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Date query parameter required")
}

func TestByDate_RejectsBadDate(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance?date=15-03-2024", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestByDate_EmptyDayReturnsEmptyArray(t *testing.T) {
	owner := primitive.NewObjectID()
	store := &fakeAttendanceStore{
		attendanceByDay: func(gotOwner primitive.ObjectID, start, next time.Time) ([]models.Attendance, error) {
			assert.Equal(t, owner, gotOwner)
			assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), next)
			return nil, nil
		},
	}
	h := NewAttendanceHandler(store, &fakeSummaryService{}, nil)
	r := attendanceRouter(owner, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance?date=2024-03-15", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestSave_RejectsEmptyBody(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	for _, body := range []string{"", "[]", "{}"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestSave_RejectsMissingFields(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	body := `[{"employee_id":"` + primitive.NewObjectID().Hex() + `","status":"present"}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing fields")
}

func TestSave_RejectsUnknownStatus(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	body := `[{"employee_id":"` + primitive.NewObjectID().Hex() +
		`","workplace_id":"` + primitive.NewObjectID().Hex() +
		`","date":"2024-03-15","status":"vacation","wage":100}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid attendance status")
}

func TestSave_UpsertsParsedRecords(t *testing.T) {
	owner := primitive.NewObjectID()
	employeeID := primitive.NewObjectID()
	workplaceID := primitive.NewObjectID()

	var saved []models.Attendance
	store := &fakeAttendanceStore{
		bulkUpsertAttendance: func(gotOwner primitive.ObjectID, records []models.Attendance) error {
			assert.Equal(t, owner, gotOwner)
			saved = records
			return nil
		},
	}
	h := NewAttendanceHandler(store, &fakeSummaryService{}, nil)
	r := attendanceRouter(owner, h)

	body := `[{"employee_id":"` + employeeID.Hex() +
		`","workplace_id":"` + workplaceID.Hex() +
		`","date":"2024-03-15","status":"present","wage":150}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, saved, 1)
	assert.Equal(t, employeeID, saved[0].EmployeeID)
	assert.Equal(t, workplaceID, saved[0].WorkplaceID)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), saved[0].Date)
	assert.Equal(t, models.StatusPresent, saved[0].Status)
	assert.Equal(t, 150.0, saved[0].Wage)
}

func TestSave_AcceptsZeroWage(t *testing.T) {
	store := &fakeAttendanceStore{
		bulkUpsertAttendance: func(primitive.ObjectID, []models.Attendance) error { return nil },
	}
	h := NewAttendanceHandler(store, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	body := `[{"employee_id":"` + primitive.NewObjectID().Hex() +
		`","workplace_id":"` + primitive.NewObjectID().Hex() +
		`","date":"2024-03-15","status":"absent","wage":0}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummary_RequiresMonthAndYear(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/summary?month=3", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Month and Year are required")
}

func TestSummary_RejectsOutOfRangeMonth(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/summary?month=13&year=2024", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid month")
}

func TestSummary_PassesEmployeeFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	filtered := primitive.NewObjectID()

	svc := &fakeSummaryService{
		monthlySummary: func(gotOwner primitive.ObjectID, month, year int, employeeID *primitive.ObjectID) ([]models.EmployeeSummary, error) {
			assert.Equal(t, owner, gotOwner)
			assert.Equal(t, 3, month)
			assert.Equal(t, 2024, year)
			require.NotNil(t, employeeID)
			assert.Equal(t, filtered, *employeeID)
			return []models.EmployeeSummary{}, nil
		},
	}
	h := NewAttendanceHandler(&fakeAttendanceStore{}, svc, nil)
	r := attendanceRouter(owner, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/summary?month=3&year=2024&employeeId="+filtered.Hex(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestSummary_RejectsBadEmployeeID(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceStore{}, &fakeSummaryService{}, nil)
	r := attendanceRouter(primitive.NewObjectID(), h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/summary?month=3&year=2024&employeeId=zzz", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid employee id")
}
