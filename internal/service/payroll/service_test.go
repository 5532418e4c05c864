package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
)

// fakeStore is an in-memory Store that applies the same owner filtering the
// real repository does.
type fakeStore struct {
	employees  []models.Employee
	workplaces []models.Workplace
	attendance []models.Attendance
	loans      []models.Loan
	deductions []models.Deduction
}

func (f *fakeStore) EmployeesByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range f.employees {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) EmployeeByID(_ context.Context, owner, id primitive.ObjectID) (models.Employee, error) {
	for _, e := range f.employees {
		if e.Owner == owner && e.ID == id {
			return e, nil
		}
	}
	return models.Employee{}, mongodb.ErrNotFound
}

func (f *fakeStore) WorkplacesByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Workplace, error) {
	var out []models.Workplace
	for _, w := range f.workplaces {
		if w.Owner == owner {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) AttendanceInRange(_ context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, start, end time.Time) ([]models.Attendance, error) {
	ids := map[primitive.ObjectID]bool{}
	for _, id := range employeeIDs {
		ids[id] = true
	}
	var out []models.Attendance
	for _, a := range f.attendance {
		if a.Owner == owner && ids[a.EmployeeID] && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) LoansInRange(_ context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Loan, error) {
	ids := map[primitive.ObjectID]bool{}
	for _, id := range employeeIDs {
		ids[id] = true
	}
	var out []models.Loan
	for _, l := range f.loans {
		if l.Owner == owner && ids[l.EmployeeID] && l.Date >= startDay && l.Date <= endDay {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) DeductionsInRange(_ context.Context, owner primitive.ObjectID, employeeIDs []primitive.ObjectID, startDay, endDay string) ([]models.Deduction, error) {
	ids := map[primitive.ObjectID]bool{}
	for _, id := range employeeIDs {
		ids[id] = true
	}
	var out []models.Deduction
	for _, d := range f.deductions {
		if d.Owner == owner && ids[d.EmployeeID] && d.Date >= startDay && d.Date <= endDay {
			out = append(out, d)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlySummary_AbsenceDefaultAndOvertime(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Name: "E", Wage: 100}
	site := models.Workplace{ID: primitive.NewObjectID(), Owner: owner, Name: "Site A"}

	store := &fakeStore{
		employees:  []models.Employee{emp},
		workplaces: []models.Workplace{site},
		attendance: []models.Attendance{{
			Owner:       owner,
			EmployeeID:  emp.ID,
			WorkplaceID: site.ID,
			Date:        day(2024, 3, 1),
			Status:      models.StatusPresent,
			Wage:        150,
		}},
	}

	svc := NewService(store, nil)
	summaries, err := svc.MonthlySummary(context.Background(), owner, 3, 2024, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	sum := summaries[0]
	require.Len(t, sum.Days, 31)

	day1 := sum.Days[0]
	assert.Equal(t, models.StatusPresent, day1.Status)
	assert.Equal(t, 150.0, day1.Wage)
	assert.Equal(t, 50.0, day1.OvertimeWage)
	assert.Equal(t, "Site A", day1.Workplace)

	day2 := sum.Days[1]
	assert.Equal(t, models.StatusAbsent, day2.Status)
	assert.Equal(t, 0.0, day2.Wage)
	assert.Equal(t, 0.0, day2.OvertimeWage)
	assert.Equal(t, "", day2.Workplace)

	assert.Equal(t, 1, sum.TotalPresent)
	assert.Equal(t, 30, sum.TotalAbsent)
	assert.Equal(t, 150.0, sum.TotalWage)
	assert.Equal(t, 50.0, sum.TotalOvertimeWage)
	assert.Equal(t, map[string]int{"Site A": 1}, sum.Workplaces)
	assert.Equal(t, 200.0, sum.FinalSalary)
}

func TestMonthlySummary_NoRecordsMeansAllAbsent(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Name: "E", Wage: 80}

	store := &fakeStore{employees: []models.Employee{emp}}
	svc := NewService(store, nil)

	summaries, err := svc.MonthlySummary(context.Background(), owner, 4, 2024, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	sum := summaries[0]
	assert.Len(t, sum.Days, 30)
	assert.Equal(t, 0, sum.TotalPresent)
	assert.Equal(t, 30, sum.TotalAbsent)
	assert.Equal(t, 0.0, sum.TotalWage)
	for _, d := range sum.Days {
		assert.Equal(t, models.StatusAbsent, d.Status)
		assert.Equal(t, 0.0, d.Wage)
	}
}

func TestMonthlySummary_WageBelowBaseYieldsNoOvertime(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Wage: 100}

	store := &fakeStore{
		employees: []models.Employee{emp},
		attendance: []models.Attendance{{
			Owner:      owner,
			EmployeeID: emp.ID,
			Date:       day(2024, 3, 5),
			Status:     models.StatusPresent,
			Wage:       60,
		}},
	}

	svc := NewService(store, nil)
	summaries, err := svc.MonthlySummary(context.Background(), owner, 3, 2024, nil)
	require.NoError(t, err)

	sum := summaries[0]
	assert.Equal(t, 0.0, sum.TotalOvertimeWage)
	assert.Equal(t, 60.0, sum.TotalWage)
	for _, d := range sum.Days {
		assert.GreaterOrEqual(t, d.OvertimeWage, 0.0)
	}
}

func TestMonthlySummary_LoansAndDeductionsNet(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Wage: 100}

	store := &fakeStore{
		employees: []models.Employee{emp},
		attendance: []models.Attendance{{
			Owner:      owner,
			EmployeeID: emp.ID,
			Date:       day(2024, 3, 1),
			Status:     models.StatusPresent,
			Wage:       150,
		}},
		loans: []models.Loan{
			{Owner: owner, EmployeeID: emp.ID, Amount: 200, Remark: "advance", Date: "2024-03-10"},
			{Owner: owner, EmployeeID: emp.ID, Amount: 75, Date: "2024-04-01"}, // outside range
		},
		deductions: []models.Deduction{
			{Owner: owner, EmployeeID: emp.ID, Amount: 50, Remark: "damage", Date: "2024-03-12"},
		},
	}

	svc := NewService(store, nil)
	summaries, err := svc.MonthlySummary(context.Background(), owner, 3, 2024, nil)
	require.NoError(t, err)

	sum := summaries[0]
	assert.Equal(t, 200.0, sum.TotalLoanAmount)
	assert.Equal(t, 50.0, sum.TotalDeductionAmount)
	require.Len(t, sum.Loans, 1)
	assert.Equal(t, "advance", sum.Loans[0].Remark)
	// 150 wage + 50 overtime - 200 loan - 50 deduction
	assert.Equal(t, -50.0, sum.FinalSalary)
}

func TestMonthlySummary_EmployeeFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	a := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Name: "A", Wage: 100}
	b := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Name: "B", Wage: 100}

	store := &fakeStore{employees: []models.Employee{a, b}}
	svc := NewService(store, nil)

	summaries, err := svc.MonthlySummary(context.Background(), owner, 3, 2024, &b.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "B", summaries[0].Employee.Name)
}

func TestMonthlySummary_UnknownEmployeeFilterIsEmptyResult(t *testing.T) {
	owner := primitive.NewObjectID()
	store := &fakeStore{}
	svc := NewService(store, nil)

	missing := primitive.NewObjectID()
	summaries, err := svc.MonthlySummary(context.Background(), owner, 3, 2024, &missing)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestMonthlySummary_CrossOwnerIsolation(t *testing.T) {
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	empA := models.Employee{ID: primitive.NewObjectID(), Owner: ownerA, Name: "A", Wage: 100}
	empB := models.Employee{ID: primitive.NewObjectID(), Owner: ownerB, Name: "B", Wage: 100}

	store := &fakeStore{
		employees: []models.Employee{empA, empB},
		attendance: []models.Attendance{
			{Owner: ownerB, EmployeeID: empB.ID, Date: day(2024, 3, 1), Status: models.StatusPresent, Wage: 500},
		},
		loans: []models.Loan{
			{Owner: ownerB, EmployeeID: empB.ID, Amount: 999, Date: "2024-03-05"},
		},
	}

	svc := NewService(store, nil)
	summaries, err := svc.MonthlySummary(context.Background(), ownerA, 3, 2024, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	sum := summaries[0]
	assert.Equal(t, "A", sum.Employee.Name)
	assert.Equal(t, 0.0, sum.TotalWage)
	assert.Equal(t, 0.0, sum.TotalLoanAmount)
}

func TestMonthlySummary_LeapFebruary(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Wage: 100}

	store := &fakeStore{employees: []models.Employee{emp}}
	svc := NewService(store, nil)

	summaries, err := svc.MonthlySummary(context.Background(), owner, 2, 2024, nil)
	require.NoError(t, err)
	assert.Len(t, summaries[0].Days, 29)
}

func TestSalarySummary_SumsExistingRecordsOnly(t *testing.T) {
	owner := primitive.NewObjectID()
	emp := models.Employee{ID: primitive.NewObjectID(), Owner: owner, Name: "E", Wage: 100}

	store := &fakeStore{
		employees: []models.Employee{emp},
		attendance: []models.Attendance{
			{Owner: owner, EmployeeID: emp.ID, Date: day(2024, 3, 1), Status: models.StatusPresent, Wage: 150},
			{Owner: owner, EmployeeID: emp.ID, Date: day(2024, 3, 2), Status: models.StatusAbsent, Wage: 0},
		},
		loans: []models.Loan{
			{Owner: owner, EmployeeID: emp.ID, Amount: 40, Date: "2024-03-15"},
		},
		deductions: []models.Deduction{
			{Owner: owner, EmployeeID: emp.ID, Amount: 10, Date: "2024-03-20"},
		},
	}

	svc := NewService(store, nil)
	rows, err := svc.SalarySummary(context.Background(), owner, 3, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 150.0, row.TotalSalary)
	assert.Equal(t, 40.0, row.LoanDeductions)
	assert.Equal(t, 10.0, row.Deductions)
	// Overtime is not added back in this variant; totalSalary already holds
	// the full paid amounts.
	assert.Equal(t, 100.0, row.FinalSalary)
}

func TestSalarySummary_NoEmployees(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	rows, err := svc.SalarySummary(context.Background(), primitive.NewObjectID(), 3, 2024)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
