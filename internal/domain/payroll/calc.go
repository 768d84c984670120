package payroll

import "github.com/shopspring/decimal"

// Fixed contribution rates. EPS and pension are charged at the same flat
// rate on both the employee and the employer side; ARL is employer-only.
var (
	EPSRate     = decimal.RequireFromString("0.04")
	PensionRate = decimal.RequireFromString("0.04")
	ARLRate     = decimal.RequireFromString("0.00522")
)

const moneyPlaces = 2

// Breakdown holds the mandatory contributions for one gross salary.
// Values are kept unrounded; use Rounded or Preview at output time.
type Breakdown struct {
	SalaryGross     decimal.Decimal
	EmployeeEPS     decimal.Decimal
	EmployerEPS     decimal.Decimal
	EmployeePension decimal.Decimal
	EmployerPension decimal.Decimal
	NetSalary       decimal.Decimal
}

// Extended adds the employer-only ARL contribution and the total cost of
// the employee to the employer.
type Extended struct {
	Breakdown
	EmployerARL       decimal.Decimal
	TotalEmployerCost decimal.Decimal
}

// ComputeDeductions expects a non-negative salary; input validation is the caller's job.
func ComputeDeductions(salary decimal.Decimal) Breakdown {
	employeeEPS := salary.Mul(EPSRate)
	employeePension := salary.Mul(PensionRate)
	return Breakdown{
		SalaryGross:     salary,
		EmployeeEPS:     employeeEPS,
		EmployerEPS:     salary.Mul(EPSRate),
		EmployeePension: employeePension,
		EmployerPension: salary.Mul(PensionRate),
		NetSalary:       salary.Sub(employeeEPS.Add(employeePension)),
	}
}

func ComputeExtended(salary decimal.Decimal) Extended {
	b := ComputeDeductions(salary)
	arl := salary.Mul(ARLRate)
	return Extended{
		Breakdown:         b,
		EmployerARL:       arl,
		TotalEmployerCost: salary.Add(b.EmployerEPS).Add(b.EmployerPension).Add(arl),
	}
}

func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		SalaryGross:     roundMoney(b.SalaryGross),
		EmployeeEPS:     roundMoney(b.EmployeeEPS),
		EmployerEPS:     roundMoney(b.EmployerEPS),
		EmployeePension: roundMoney(b.EmployeePension),
		EmployerPension: roundMoney(b.EmployerPension),
		NetSalary:       roundMoney(b.NetSalary),
	}
}

func (e Extended) Rounded() Extended {
	return Extended{
		Breakdown:         e.Breakdown.Rounded(),
		EmployerARL:       roundMoney(e.EmployerARL),
		TotalEmployerCost: roundMoney(e.TotalEmployerCost),
	}
}

// PreviewResult is the payroll preview payload. Every amount carries exactly two decimals.
type PreviewResult struct {
	SalaryGross     string `json:"salaryGross"`
	EmployeeEPS     string `json:"employeeEps"`
	EmployerEPS     string `json:"employerEps"`
	EmployeePension string `json:"employeePension"`
	EmployerPension string `json:"employerPension"`
	NetSalary       string `json:"netSalary"`
}

func Preview(salary decimal.Decimal) PreviewResult {
	b := ComputeDeductions(salary)
	return PreviewResult{
		SalaryGross:     b.SalaryGross.StringFixed(moneyPlaces),
		EmployeeEPS:     b.EmployeeEPS.StringFixed(moneyPlaces),
		EmployerEPS:     b.EmployerEPS.StringFixed(moneyPlaces),
		EmployeePension: b.EmployeePension.StringFixed(moneyPlaces),
		EmployerPension: b.EmployerPension.StringFixed(moneyPlaces),
		NetSalary:       b.NetSalary.StringFixed(moneyPlaces),
	}
}

// roundMoney rounds half away from zero, the same rule StringFixed uses.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
