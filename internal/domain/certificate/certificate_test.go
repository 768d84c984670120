package certificate

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empleados/internal/domain/catalogs"
	"empleados/internal/domain/employees"
)

var asOf = time.Date(2025, 3, 24, 15, 0, 0, 0, time.UTC)

func sampleEmployee() employees.Employee {
	return employees.Employee{
		ID:          "e-1",
		FirstName:   "José",
		LastName:    "Pérez",
		NationalID:  "1020304050",
		BloodType:   employees.BloodOPos,
		Salary:      decimal.RequireFromString("2000000.00"),
		ARL:         catalogs.Entry{ID: "a", Name: "SURA"},
		EPS:         catalogs.Entry{ID: "b", Name: "Sanitas"},
		PensionFund: catalogs.Entry{ID: "c", Name: "Porvenir"},
		CreatedAt:   time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Company{Name: "Empresa Demo S.A.S.", NIT: "900123456-7", Address: "Calle 1 # 2-3", City: "Medellín"}, "es-CO", "COP", "America/Bogota")
	require.NoError(t, err)
	r.compress = false
	return r
}

func TestStatus(t *testing.T) {
	at := func(d time.Duration) *time.Time {
		v := asOf.Add(d)
		return &v
	}
	tests := []struct {
		name        string
		termination *time.Time
		wantStatus  string
		wantDays    int
	}{
		{"no termination", nil, StatusActive, 0},
		{"ten days ago", at(-10 * 24 * time.Hour), StatusInactive, 10},
		{"partial day floors", at(-(10*24 + 23) * time.Hour), StatusInactive, 10},
		{"terminated right now", at(0), StatusInactive, 0},
		{"terminated an hour ago", at(-time.Hour), StatusInactive, 0},
		{"future termination", at(48 * time.Hour), StatusActive, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			emp := sampleEmployee()
			emp.TerminationDate = tc.termination
			got := Status(emp, asOf)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.wantDays, got.InactiveDays)
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"José Pérez":                   "Jose_Perez",
		"  María  de   los Ángeles!! ": "Maria_de_los_Angeles",
		"Ñandú O'Neil":                 "Nandu_ONeil",
		"ana-maría_lópez":              "ana-maria_lopez",
		"***":                          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "certificado-Jose_Perez.pdf", FileName("José Pérez"))
	assert.Equal(t, "certificado-empleado.pdf", FileName(" ¿? "))
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "24 de marzo de 2025", FormatLongDate(asOf, time.UTC))
	assert.Equal(t, "1 de enero de 2024", FormatLongDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil))

	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	lateNight := time.Date(2025, 3, 25, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "24 de marzo de 2025", FormatLongDate(lateNight, bogota))
	assert.Equal(t, "31 de diciembre de 2024", FormatLongDate(time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC), bogota))
}

func TestCurrencyFormat(t *testing.T) {
	f, err := newCurrencyFormatter("es-CO", "COP")
	require.NoError(t, err)
	nonDigits := regexp.MustCompile(`[^0-9]`)

	got := f.Format(decimal.RequireFromString("2000000.00"))
	assert.Regexp(t, ` COP$`, got)
	assert.Equal(t, "2000000", nonDigits.ReplaceAllString(got, ""))
	assert.Greater(t, len(got), len("2000000 COP"), "expected grouping separators in %q", got)

	rounded := f.Format(decimal.RequireFromString("1234567.50"))
	assert.Equal(t, "1234568", nonDigits.ReplaceAllString(rounded, ""))

	_, err = newCurrencyFormatter("not a locale!", "COP")
	assert.Error(t, err)
}

func TestNewRendererRejectsUnknownTimeZone(t *testing.T) {
	_, err := NewRenderer(Company{Name: "X"}, "es-CO", "COP", "Mars/Olympus")
	assert.Error(t, err)
}

func TestRenderInactive(t *testing.T) {
	r := newTestRenderer(t)
	emp := sampleEmployee()
	term := asOf.Add(-10 * 24 * time.Hour)
	emp.TerminationDate = &term

	doc, err := r.Render(emp, asOf)
	require.NoError(t, err)
	assert.Equal(t, "certificado-Jose_Perez.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))

	assert.Contains(t, string(doc.Data), "CERTIFICADO LABORAL")
	assert.Contains(t, string(doc.Data), "(INACTIVO)")
	assert.Contains(t, string(doc.Data), "14 de marzo de 2025")
	assert.Contains(t, string(doc.Data), "Porvenir")
}

func TestRenderActive(t *testing.T) {
	r := newTestRenderer(t)
	emp := sampleEmployee()
	emp.PensionFund = catalogs.Entry{}

	doc, err := r.Render(emp, asOf)
	require.NoError(t, err)
	body := string(doc.Data)
	assert.Contains(t, body, "(ACTIVO)")
	assert.NotContains(t, body, "INACTIVO")
	assert.Contains(t, body, "(N/A)")
	assert.Contains(t, body, "15 de enero de 2020")
}

func TestRenderDateOnlyTerminationKeepsCalendarDay(t *testing.T) {
	r := newTestRenderer(t)
	term, err := employees.ParseDate("2025-03-24", r.Location())
	require.NoError(t, err)
	emp := sampleEmployee()
	emp.TerminationDate = &term

	assert.Equal(t, "24 de marzo de 2025", FormatLongDate(term, r.Location()))

	doc, err := r.Render(emp, asOf)
	require.NoError(t, err)
	body := string(doc.Data)
	assert.Contains(t, body, "(INACTIVO)")
	assert.Contains(t, body, "24 de marzo de 2025")
	assert.NotContains(t, body, "23 de marzo de 2025")
}

func TestRenderEmptyNameFallsBack(t *testing.T) {
	r := newTestRenderer(t)
	emp := sampleEmployee()
	emp.FirstName, emp.LastName = "", ""

	doc, err := r.Render(emp, asOf)
	require.NoError(t, err)
	assert.Equal(t, "certificado-empleado.pdf", doc.Filename)
}
