package certificate

import (
	"time"

	"empleados/internal/domain/employees"
)

const (
	StatusActive   = "ACTIVO"
	StatusInactive = "INACTIVO"
)

type StatusInfo struct {
	Status       string
	InactiveDays int
}

// Status is INACTIVO once the termination date is reached, counting whole
// days elapsed since then.
func Status(emp employees.Employee, asOf time.Time) StatusInfo {
	if emp.TerminationDate == nil || emp.TerminationDate.After(asOf) {
		return StatusInfo{Status: StatusActive}
	}
	days := int(asOf.Sub(*emp.TerminationDate) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return StatusInfo{Status: StatusInactive, InactiveDays: days}
}
