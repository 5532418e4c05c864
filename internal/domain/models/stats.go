package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Overview carries the headline counters for an owner.
type Overview struct {
	TotalEmployees  int64   `json:"totalEmployees"`
	TotalWage       float64 `json:"totalWage"`
	TotalWorkplaces int64   `json:"totalWorkplaces"`
}

// MonthWage is one month's wage total in the dashboard chart.
type MonthWage struct {
	Month string  `json:"month"`
	Wage  float64 `json:"wage"`
}

// TodayCounts is the present/absent split for the current day.
type TodayCounts struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
}

// Dashboard combines the monthly wage chart with today's headcount.
type Dashboard struct {
	MonthlyWages []MonthWage `json:"monthlyWages"`
	Today        TodayCounts `json:"today"`
}

// RollupEmployee is one employee line inside a workplace rollup.
type RollupEmployee struct {
	EmployeeID     primitive.ObjectID `json:"employee_id"`
	Name           string             `json:"name"`
	BasicWage      float64            `json:"basic_wage"`
	OvertimeWage   float64            `json:"overtime_wage"`
	TotalDailyWage float64            `json:"total_daily_wage"`
}

// WorkplaceRollup groups one day's attendance for a single workplace.
// Records whose workplace reference cannot be resolved share a bucket with an
// empty workplace name instead of being dropped.
type WorkplaceRollup struct {
	WorkplaceName    string           `json:"workplace_name"`
	PresentCount     int              `json:"presentCount"`
	AbsentCount      int              `json:"absentCount"`
	Total            int              `json:"total"`
	PresentEmployees []RollupEmployee `json:"presentEmployees"`
	AbsentEmployees  []RollupEmployee `json:"absentEmployees"`
	TotalSalary      float64          `json:"totalSalary"`
}

// RollupTotals sums a day rollup across all workplaces.
type RollupTotals struct {
	TotalPresent int     `json:"totalPresent"`
	TotalAbsent  int     `json:"totalAbsent"`
	TotalSalary  float64 `json:"totalSalary"`
}

// DayRollup is the full response of the daily workplace rollup.
type DayRollup struct {
	Date       string            `json:"date"`
	Message    string            `json:"message,omitempty"`
	Workplaces []WorkplaceRollup `json:"workplaces"`
	Totals     RollupTotals      `json:"totals"`
}

// WeeklyDay is one of the trailing seven days in the weekly rollup. The axis
// is always fully populated; days without data stay at zero.
type WeeklyDay struct {
	Date        string  `json:"date"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Total       int     `json:"total"`
	TotalSalary float64 `json:"totalSalary"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID     int    `json:"id"`
	User   string `json:"user"`
	Action string `json:"action"`
	Time   string `json:"time"`
	Status string `json:"status"`
}
