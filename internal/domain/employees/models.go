package employees

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"empleados/internal/domain/catalogs"
)

type BloodType string

const (
	BloodOPos  BloodType = "O_POS"
	BloodONeg  BloodType = "O_NEG"
	BloodAPos  BloodType = "A_POS"
	BloodANeg  BloodType = "A_NEG"
	BloodBPos  BloodType = "B_POS"
	BloodBNeg  BloodType = "B_NEG"
	BloodABPos BloodType = "AB_POS"
	BloodABNeg BloodType = "AB_NEG"
)

var BloodTypes = []BloodType{BloodOPos, BloodONeg, BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg}

// Employee is a stored record joined with its affiliation names.
type Employee struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	NationalID      string          `json:"nationalId"`
	BloodType       BloodType       `json:"bloodType"`
	Phone           string          `json:"phone"`
	Salary          decimal.Decimal `json:"salary"`
	ARL             catalogs.Entry  `json:"arl"`
	EPS             catalogs.Entry  `json:"eps"`
	PensionFund     catalogs.Entry  `json:"pensionFund"`
	TerminationDate *time.Time      `json:"terminationDate"`
	CreatedBy       string          `json:"createdById,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// CreateInput is the raw create payload. Salary travels as a decimal string.
type CreateInput struct {
	FirstName       string `json:"firstName" validate:"required,min=2"`
	LastName        string `json:"lastName" validate:"required,min=2"`
	NationalID      string `json:"nationalId" validate:"required,min=5,number"`
	BloodType       string `json:"bloodType" validate:"required,oneof=O_POS O_NEG A_POS A_NEG B_POS B_NEG AB_POS AB_NEG"`
	Phone           string `json:"phone" validate:"required"`
	Salary          string `json:"salary" validate:"required"`
	ARLID           string `json:"arlId" validate:"required,uuid"`
	EPSID           string `json:"epsId" validate:"required,uuid"`
	PensionFundID   string `json:"pensionFundId" validate:"required,uuid"`
	TerminationDate string `json:"terminationDate"`
}

// UpdateInput is a partial update; nil fields are left untouched and an
// empty terminationDate clears it.
type UpdateInput struct {
	FirstName       *string `json:"firstName" validate:"omitempty,min=2"`
	LastName        *string `json:"lastName" validate:"omitempty,min=2"`
	NationalID      *string `json:"nationalId" validate:"omitempty,min=5,number"`
	BloodType       *string `json:"bloodType" validate:"omitempty,oneof=O_POS O_NEG A_POS A_NEG B_POS B_NEG AB_POS AB_NEG"`
	Phone           *string `json:"phone" validate:"omitempty,min=1"`
	Salary          *string `json:"salary"`
	ARLID           *string `json:"arlId" validate:"omitempty,uuid"`
	EPSID           *string `json:"epsId" validate:"omitempty,uuid"`
	PensionFundID   *string `json:"pensionFundId" validate:"omitempty,uuid"`
	TerminationDate *string `json:"terminationDate"`
}

// Fields are validated values ready to insert.
type Fields struct {
	FirstName       string
	LastName        string
	NationalID      string
	BloodType       BloodType
	Phone           string
	Salary          decimal.Decimal
	ARLID           string
	EPSID           string
	PensionFundID   string
	TerminationDate *time.Time
}

// Changes are validated values for a partial update.
type Changes struct {
	FirstName        *string
	LastName         *string
	NationalID       *string
	BloodType        *BloodType
	Phone            *string
	Salary           *decimal.Decimal
	ARLID            *string
	EPSID            *string
	PensionFundID    *string
	TerminationDate  *time.Time
	ClearTermination bool
}

func (c Changes) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.NationalID == nil && c.BloodType == nil &&
		c.Phone == nil && c.Salary == nil && c.ARLID == nil && c.EPSID == nil && c.PensionFundID == nil &&
		c.TerminationDate == nil && !c.ClearTermination
}

type Filter struct {
	Search string
}

// Page is one page of the employee list.
type Page struct {
	Items []Employee `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}

func NewPage(items []Employee, total, page, size int) Page {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	if items == nil {
		items = []Employee{}
	}
	return Page{Items: items, Total: total, Page: page, Size: size, Pages: pages}
}
