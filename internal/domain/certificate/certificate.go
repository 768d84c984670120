package certificate

import (
	"bytes"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/jung-kurt/gofpdf"

	"empleados/internal/domain/employees"
)

const (
	ContentType  = "application/pdf"
	notAvailable = "N/A"
)

type Company struct {
	Name    string
	NIT     string
	Address string
	City    string
}

type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Renderer produces labor certificates for one company.
type Renderer struct {
	company  Company
	currency currencyFormatter
	loc      *time.Location
	compress bool
}

func NewRenderer(company Company, locale, currency, timeZone string) (*Renderer, error) {
	formatter, err := newCurrencyFormatter(locale, currency)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", timeZone, err)
	}
	return &Renderer{company: company, currency: formatter, loc: loc, compress: true}, nil
}

// Location is the zone dates are printed in.
func (r *Renderer) Location() *time.Location { return r.loc }

// Render builds the certificate in memory. The caller has already resolved
// the employee, so a missing record never reaches this point.
func (r *Renderer) Render(emp employees.Employee, asOf time.Time) (Document, error) {
	status := Status(emp, asOf)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(25, 25, 25)
	pdf.SetTitle("Certificado laboral", true)
	pdf.SetCreator(r.company.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "CERTIFICADO LABORAL", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr(r.company.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range r.companyLines() {
		pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Fecha de expedición: "+FormatLongDate(asOf, r.loc)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr("A QUIEN INTERESE"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(r.narrative(emp, status)), "", "J", false)
	pdf.Ln(6)

	for _, field := range r.details(emp, status) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, tr(field[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(field[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	closing := "Se expide a solicitud del interesado"
	if r.company.City != "" {
		closing += " en " + r.company.City
	}
	closing += ", el " + FormatLongDate(asOf, r.loc) + "."
	pdf.MultiCell(0, 6, tr(closing), "", "L", false)
	pdf.Ln(24)

	pdf.CellFormat(70, 0, "", "T", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr("Recursos Humanos"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(r.company.Name), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render certificate: %w", err)
	}
	return Document{
		Filename:    FileName(emp.FullName()),
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (r *Renderer) companyLines() []string {
	lines := []string{}
	if r.company.NIT != "" {
		lines = append(lines, "NIT "+r.company.NIT)
	}
	if r.company.Address != "" {
		lines = append(lines, r.company.Address)
	}
	if r.company.City != "" {
		lines = append(lines, r.company.City)
	}
	return lines
}

func (r *Renderer) narrative(emp employees.Employee, status StatusInfo) string {
	hired := FormatLongDate(emp.CreatedAt, r.loc)
	if status.Status == StatusInactive {
		return fmt.Sprintf(
			"La empresa %s certifica que %s, identificado(a) con cédula de ciudadanía No. %s, "+
				"laboró en esta compañía desde el %s hasta el %s. A la fecha de expedición de este "+
				"certificado han transcurrido %d día(s) desde su retiro.",
			r.company.Name, emp.FullName(), emp.NationalID, hired,
			FormatLongDate(*emp.TerminationDate, r.loc), status.InactiveDays,
		)
	}
	return fmt.Sprintf(
		"La empresa %s certifica que %s, identificado(a) con cédula de ciudadanía No. %s, "+
			"labora en esta compañía desde el %s y a la fecha se encuentra vinculado(a) de manera activa.",
		r.company.Name, emp.FullName(), emp.NationalID, hired,
	)
}

func (r *Renderer) details(emp employees.Employee, status StatusInfo) [][2]string {
	terminated := notAvailable
	if emp.TerminationDate != nil {
		terminated = FormatLongDate(*emp.TerminationDate, r.loc)
	}
	return [][2]string{
		{"Estado", status.Status},
		{"Salario", r.currency.Format(emp.Salary)},
		{"Fecha de ingreso", FormatLongDate(emp.CreatedAt, r.loc)},
		{"Fecha de retiro", terminated},
		{"ARL", orNotAvailable(emp.ARL.Name)},
		{"EPS", orNotAvailable(emp.EPS.Name)},
		{"Fondo de pensiones", orNotAvailable(emp.PensionFund.Name)},
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
