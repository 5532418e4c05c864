package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayEntry is one calendar day in a monthly employee summary. Days without an
// attendance record still get an entry, marked absent with zero wage.
type DayEntry struct {
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	Workplace    string    `json:"workplace"`
	Wage         float64   `json:"wage"`
	OvertimeWage float64   `json:"overtimeWage"`
}

// MoneyEntry lists a single loan or deduction inside a summary.
type MoneyEntry struct {
	Amount float64 `json:"amount"`
	Remark string  `json:"remark"`
}

// EmployeeSummary is the full monthly breakdown for one employee: one entry
// per calendar day, running totals, per-workplace day counts and the netted
// final salary.
type EmployeeSummary struct {
	Employee             Employee       `json:"employee"`
	Days                 []DayEntry     `json:"days"`
	TotalPresent         int            `json:"totalPresent"`
	TotalAbsent          int            `json:"totalAbsent"`
	TotalWage            float64        `json:"totalWage"`
	TotalOvertimeWage    float64        `json:"totalOvertimeWage"`
	Workplaces           map[string]int `json:"workplaces"`
	Loans                []MoneyEntry   `json:"loans"`
	Deductions           []MoneyEntry   `json:"deductions"`
	TotalLoanAmount      float64        `json:"totalLoanAmount"`
	TotalDeductionAmount float64        `json:"totalDeductionAmount"`
	FinalSalary          float64        `json:"finalSalary"`
}

// SalaryRow is the flat per-employee row of the monthly salary summary. It
// sums existing attendance records only; totalSalary already carries any
// overtime premium, so finalSalary does not add it back.
type SalaryRow struct {
	EmployeeID     primitive.ObjectID `json:"employeeId"`
	Name           string             `json:"name"`
	TotalSalary    float64            `json:"totalSalary"`
	LoanDeductions float64            `json:"loanDeductions"`
	Deductions     float64            `json:"deductions"`
	FinalSalary    float64            `json:"finalSalary"`
}
