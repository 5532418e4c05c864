// Package stats produces the rollup endpoints: owner-wide counters, the
// dashboard chart, the per-workplace daily rollup and the trailing-week view.
// Daily and weekly windows are computed in the configured reference timezone;
// the yearly counters stay in UTC like the monthly summaries.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/dates"
	"wagebook-backend/internal/domain/models"
)

// Store is the slice of the entity store the rollups read from.
type Store interface {
	CountEmployees(ctx context.Context, owner primitive.ObjectID) (int64, error)
	CountWorkplaces(ctx context.Context, owner primitive.ObjectID) (int64, error)
	EmployeesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Employee, error)
	WorkplacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Workplace, error)
	AttendanceInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, start, end time.Time) ([]models.Attendance, error)
	SumWages(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (float64, error)
	MonthlyWageTotals(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (map[int]float64, error)
	CountPresent(ctx context.Context, owner primitive.ObjectID, start, end time.Time) (int64, error)
}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Service computes attendance rollups for one owner at a time.
type Service struct {
	store  Store
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a stats service using loc as the reference timezone for
// the daily and weekly windows.
func NewService(store Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger}
}

// Overview returns the owner's headline counters: employee and workplace
// counts plus total wages paid in the current UTC year.
func (s *Service) Overview(ctx context.Context, owner primitive.ObjectID, now time.Time) (models.Overview, error) {
	totalEmployees, err := s.store.CountEmployees(ctx, owner)
	if err != nil {
		return models.Overview{}, fmt.Errorf("count employees: %w", err)
	}
	totalWorkplaces, err := s.store.CountWorkplaces(ctx, owner)
	if err != nil {
		return models.Overview{}, fmt.Errorf("count workplaces: %w", err)
	}

	yearStart, yearEnd := yearBounds(now)
	totalWage, err := s.store.SumWages(ctx, owner, yearStart, yearEnd)
	if err != nil {
		return models.Overview{}, fmt.Errorf("sum wages: %w", err)
	}

	return models.Overview{
		TotalEmployees:  totalEmployees,
		TotalWage:       totalWage,
		TotalWorkplaces: totalWorkplaces,
	}, nil
}

// Dashboard returns the per-month wage chart for the current UTC year along
// with today's present/absent headcount.
func (s *Service) Dashboard(ctx context.Context, owner primitive.ObjectID, now time.Time) (models.Dashboard, error) {
	yearStart, yearEnd := yearBounds(now)
	totals, err := s.store.MonthlyWageTotals(ctx, owner, yearStart, yearEnd)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("monthly wage totals: %w", err)
	}

	monthly := make([]models.MonthWage, 0, len(totals))
	for m := 1; m <= 12; m++ {
		if wage, ok := totals[m]; ok {
			monthly = append(monthly, models.MonthWage{Month: monthNames[m-1], Wage: wage})
		}
	}

	dayStart, dayNext := dates.DayRange(now.UTC())
	present, err := s.store.CountPresent(ctx, owner, dayStart, dayNext.Add(-time.Millisecond))
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("count present: %w", err)
	}

	totalEmployees, err := s.store.CountEmployees(ctx, owner)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("count employees: %w", err)
	}

	return models.Dashboard{
		MonthlyWages: monthly,
		Today: models.TodayCounts{
			Present: present,
			Absent:  totalEmployees - present,
		},
	}, nil
}

// DayRollup groups one reference-timezone day's attendance by workplace,
// splitting present from absent employees and summing salaries. Records whose
// workplace cannot be resolved land in a shared bucket with an empty name
// rather than being dropped.
func (s *Service) DayRollup(ctx context.Context, owner primitive.ObjectID, day time.Time) (models.DayRollup, error) {
	start, end := dates.DayBounds(day, s.loc)
	result := models.DayRollup{
		Date:       start.Format(dates.DayLayout),
		Workplaces: []models.WorkplaceRollup{},
	}

	employees, err := s.store.EmployeesByOwner(ctx, owner)
	if err != nil {
		return models.DayRollup{}, fmt.Errorf("load employees: %w", err)
	}
	if len(employees) == 0 {
		result.Message = "Attendance not recorded for today."
		return result, nil
	}

	byID := make(map[primitive.ObjectID]models.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	records, err := s.store.AttendanceInRange(ctx, owner, employeeIDs(employees), start, end)
	if err != nil {
		return models.DayRollup{}, fmt.Errorf("load attendance: %w", err)
	}
	if len(records) == 0 {
		result.Message = "Attendance not recorded for today."
		return result, nil
	}

	workplaces, err := s.store.WorkplacesByOwner(ctx, owner)
	if err != nil {
		return models.DayRollup{}, fmt.Errorf("load workplaces: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(workplaces))
	for _, wp := range workplaces {
		names[wp.ID] = wp.Name
	}

	grouped := map[string]*models.WorkplaceRollup{}
	for _, rec := range records {
		emp, ok := byID[rec.EmployeeID]
		if !ok {
			continue
		}

		name := names[rec.WorkplaceID]
		bucket, ok := grouped[name]
		if !ok {
			bucket = &models.WorkplaceRollup{
				WorkplaceName:    name,
				PresentEmployees: []models.RollupEmployee{},
				AbsentEmployees:  []models.RollupEmployee{},
			}
			grouped[name] = bucket
		}

		bucket.TotalSalary += rec.Wage

		line := models.RollupEmployee{
			EmployeeID:     emp.ID,
			Name:           emp.Name,
			BasicWage:      emp.Wage,
			TotalDailyWage: rec.Wage,
		}
		if rec.Status == models.StatusPresent {
			line.OvertimeWage = overtime(rec.Wage, emp.Wage)
			bucket.PresentEmployees = append(bucket.PresentEmployees, line)
		} else {
			bucket.AbsentEmployees = append(bucket.AbsentEmployees, line)
		}
	}

	for _, bucket := range grouped {
		bucket.PresentCount = len(bucket.PresentEmployees)
		bucket.AbsentCount = len(bucket.AbsentEmployees)
		bucket.Total = bucket.PresentCount + bucket.AbsentCount

		result.Workplaces = append(result.Workplaces, *bucket)
		result.Totals.TotalPresent += bucket.PresentCount
		result.Totals.TotalAbsent += bucket.AbsentCount
		result.Totals.TotalSalary += bucket.TotalSalary
	}

	sort.Slice(result.Workplaces, func(i, j int) bool {
		return result.Workplaces[i].WorkplaceName < result.Workplaces[j].WorkplaceName
	})

	return result, nil
}

// WeeklyRollup covers the trailing 7 reference-timezone days inclusive of
// today. The axis always has exactly 7 entries; days without data stay zero.
func (s *Service) WeeklyRollup(ctx context.Context, owner primitive.ObjectID, now time.Time) ([]models.WeeklyDay, error) {
	keys, first := dates.LastNDays(now, 7, s.loc)
	_, end := dates.DayBounds(now, s.loc)

	employees, err := s.store.EmployeesByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	buckets := make(map[string]*models.WeeklyDay, len(keys))
	week := make([]models.WeeklyDay, len(keys))
	for i, key := range keys {
		week[i] = models.WeeklyDay{Date: key}
		buckets[key] = &week[i]
	}

	if len(employees) > 0 {
		records, err := s.store.AttendanceInRange(ctx, owner, employeeIDs(employees), first, end)
		if err != nil {
			return nil, fmt.Errorf("load attendance: %w", err)
		}

		for _, rec := range records {
			day, ok := buckets[rec.Date.In(s.loc).Format(dates.DayLayout)]
			if !ok {
				continue
			}
			switch rec.Status {
			case models.StatusPresent:
				day.Present++
			case models.StatusAbsent:
				day.Absent++
			}
			day.Total = day.Present + day.Absent
			day.TotalSalary += rec.Wage
		}
	}

	return week, nil
}

// RecentActivity returns the static placeholder feed. There is no activity
// log collection behind this yet.
func (s *Service) RecentActivity(now time.Time) []models.Activity {
	return []models.Activity{
		{ID: 1, User: "John Doe", Action: "Marked attendance", Time: relativeTime(now.Add(-2*time.Hour), now), Status: "success"},
		{ID: 2, User: "Sarah Roy", Action: "Added wage slip", Time: relativeTime(now.Add(-6*time.Hour), now), Status: "info"},
		{ID: 3, User: "Mike Ross", Action: "Updated profile", Time: relativeTime(now.Add(-1*time.Hour), now), Status: "warning"},
	}
}

func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// yearBounds returns the inclusive UTC bounds of the year containing now.
func yearBounds(now time.Time) (time.Time, time.Time) {
	year := now.UTC().Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end
}

func overtime(wage, baseWage float64) float64 {
	if wage > baseWage {
		return wage - baseWage
	}
	return 0
}

func employeeIDs(employees []models.Employee) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	return ids
}
