// Package payroll is the aggregation engine: it joins attendance, loans and
// deductions over a calendar month and produces per-employee summaries.
package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/dates"
	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
)

// Store is the slice of the entity store the engine reads from. Every call is
// owner-scoped; the engine never widens a query beyond the given owner.
type Store interface {
	EmployeesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Employee, error)
	EmployeeByID(ctx context.Context, owner, id primitive.ObjectID) (models.Employee, error)
	WorkplacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Workplace, error)
	AttendanceInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, start, end time.Time) ([]models.Attendance, error)
	LoansInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Loan, error)
	DeductionsInRange(ctx context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Deduction, error)
}

// Service computes monthly summaries.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a payroll service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// resolveEmployees returns the full employee set of the owner, or just the
// filtered one. An unknown or foreign employee id resolves to an empty set,
// not an error.
func (s *Service) resolveEmployees(ctx context.Context, owner primitive.ObjectID, employeeID *primitive.ObjectID) ([]models.Employee, error) {
	if employeeID == nil {
		return s.store.EmployeesByOwner(ctx, owner)
	}
	emp, err := s.store.EmployeeByID(ctx, owner, *employeeID)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []models.Employee{emp}, nil
}

// MonthlySummary builds the full monthly breakdown for each employee of the
// owner (or the single filtered one): one entry per calendar day of the UTC
// month, absence-defaulted for days without a record, with loans and
// deductions netted into the final salary.
func (s *Service) MonthlySummary(ctx context.Context, owner primitive.ObjectID, month, year int, employeeID *primitive.ObjectID) ([]models.EmployeeSummary, error) {
	employees, err := s.resolveEmployees(ctx, owner, employeeID)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}
	if len(employees) == 0 {
		return []models.EmployeeSummary{}, nil
	}

	start, end, err := dates.MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	ids := employeeIDs(employees)

	records, err := s.store.AttendanceInRange(ctx, owner, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}

	startDay := start.Format(dates.DayLayout)
	endDay := end.Format(dates.DayLayout)

	loans, err := s.store.LoansInRange(ctx, owner, ids, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	deductions, err := s.store.DeductionsInRange(ctx, owner, ids, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("load deductions: %w", err)
	}

	workplaceNames, err := s.workplaceNames(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load workplaces: %w", err)
	}

	// Index attendance by (employee, day) for the per-day walk.
	byEmployeeDay := make(map[string]models.Attendance, len(records))
	for _, rec := range records {
		byEmployeeDay[dayKey(rec.EmployeeID, rec.Date)] = rec
	}

	days := dates.Days(start, end)
	summaries := make([]models.EmployeeSummary, 0, len(employees))

	for _, emp := range employees {
		sum := models.EmployeeSummary{
			Employee:   emp,
			Days:       make([]models.DayEntry, 0, len(days)),
			Workplaces: map[string]int{},
			Loans:      []models.MoneyEntry{},
			Deductions: []models.MoneyEntry{},
		}

		for _, loan := range loans {
			if loan.EmployeeID == emp.ID {
				sum.Loans = append(sum.Loans, models.MoneyEntry{Amount: loan.Amount, Remark: loan.Remark})
				sum.TotalLoanAmount += loan.Amount
			}
		}
		for _, ded := range deductions {
			if ded.EmployeeID == emp.ID {
				sum.Deductions = append(sum.Deductions, models.MoneyEntry{Amount: ded.Amount, Remark: ded.Remark})
				sum.TotalDeductionAmount += ded.Amount
			}
		}

		for _, day := range days {
			entry := models.DayEntry{Date: day, Status: models.StatusAbsent}

			if rec, ok := byEmployeeDay[dayKey(emp.ID, day)]; ok {
				entry.Status = rec.Status
				entry.Wage = rec.Wage
				entry.OvertimeWage = overtime(rec.Wage, emp.Wage)
				entry.Workplace = workplaceNames[rec.WorkplaceID]

				switch rec.Status {
				case models.StatusPresent:
					sum.TotalPresent++
				case models.StatusAbsent:
					sum.TotalAbsent++
				}
			} else {
				// No record means absence, wage zero. Deliberate default,
				// not an error.
				sum.TotalAbsent++
			}

			sum.TotalWage += entry.Wage
			sum.TotalOvertimeWage += entry.OvertimeWage
			if entry.Workplace != "" {
				sum.Workplaces[entry.Workplace]++
			}

			sum.Days = append(sum.Days, entry)
		}

		sum.FinalSalary = sum.TotalWage + sum.TotalOvertimeWage - sum.TotalLoanAmount - sum.TotalDeductionAmount
		summaries = append(summaries, sum)
	}

	s.logger.Debug("monthly summary computed",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("employees", len(summaries)))

	return summaries, nil
}

// SalarySummary is the flat variant: it sums existing attendance records only
// and never defaults missing days. Its finalSalary does not add overtime back
// on top of totalWage; the daily wage already carries the premium.
func (s *Service) SalarySummary(ctx context.Context, owner primitive.ObjectID, month, year int) ([]models.SalaryRow, error) {
	employees, err := s.store.EmployeesByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}
	if len(employees) == 0 {
		return []models.SalaryRow{}, nil
	}

	start, end, err := dates.MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	ids := employeeIDs(employees)

	records, err := s.store.AttendanceInRange(ctx, owner, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}

	startDay := start.Format(dates.DayLayout)
	endDay := end.Format(dates.DayLayout)

	loans, err := s.store.LoansInRange(ctx, owner, ids, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	deductions, err := s.store.DeductionsInRange(ctx, owner, ids, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("load deductions: %w", err)
	}

	rows := make([]models.SalaryRow, 0, len(employees))
	for _, emp := range employees {
		row := models.SalaryRow{EmployeeID: emp.ID, Name: emp.Name}

		for _, rec := range records {
			if rec.EmployeeID != emp.ID {
				continue
			}
			row.TotalSalary += rec.Wage
		}
		for _, loan := range loans {
			if loan.EmployeeID == emp.ID {
				row.LoanDeductions += loan.Amount
			}
		}
		for _, ded := range deductions {
			if ded.EmployeeID == emp.ID {
				row.Deductions += ded.Amount
			}
		}

		row.FinalSalary = row.TotalSalary - row.LoanDeductions - row.Deductions
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Service) workplaceNames(ctx context.Context, owner primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	workplaces, err := s.store.WorkplacesByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(workplaces))
	for _, wp := range workplaces {
		names[wp.ID] = wp.Name
	}
	return names, nil
}

// overtime is the portion of a day's wage above the employee's base wage,
// never negative.
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

func dayKey(employee primitive.ObjectID, t time.Time) string {
	return employee.Hex() + "/" + t.UTC().Format(dates.DayLayout)
}
