package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"empleados/internal/domain/employees"
	"empleados/internal/domain/payroll"
)

const (
	SheetName   = "Empleados"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	creator         = "CRUD Empleados"
	moneyFormat     = "#,##0.00"
	timestampLayout = "2006-01-02 15:04:05"
	activeLabel     = "Activo"
)

type column struct {
	Header string
	Width  float64
}

var columns = []column{
	{Header: "ID", Width: 36},
	{Header: "Nombre", Width: 18},
	{Header: "Apellido", Width: 18},
	{Header: "Cédula", Width: 16},
	{Header: "Tipo de Sangre", Width: 14},
	{Header: "Teléfono", Width: 14},
	{Header: "ARL", Width: 16},
	{Header: "EPS", Width: 16},
	{Header: "Fondo de Pensiones", Width: 22},
	{Header: "Salario", Width: 14},
	{Header: "EPS Empl. (4%)", Width: 16},
	{Header: "EPS Empr. (4%)", Width: 16},
	{Header: "Pen. Empl. (4%)", Width: 16},
	{Header: "Pen. Empr. (4%)", Width: 16},
	{Header: "Neto Empleado", Width: 16},
	{Header: "Total Costo Empleador", Width: 22},
	{Header: "Fecha Retiro", Width: 19},
	{Header: "Creado", Width: 19},
}

// Headers returns the column titles in sheet order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Header
	}
	return out
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("empleados_%s.xlsx", now.Format("2006-01-02"))
}

// BuildEmployeeReport renders one row per employee with its extended
// deduction breakdown and returns the xlsx bytes.
func BuildEmployeeReport(list []employees.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: creator,
		Created: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("doc props: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, err
	}
	if err := writeHeader(f, styles, lastCol); err != nil {
		return nil, err
	}
	for i, emp := range list {
		if err := writeRow(f, styles, i+2, emp); err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
	}
	if err := f.AutoFilter(SheetName, "A1:"+lastCol+"1", nil); err != nil {
		return nil, fmt.Errorf("auto filter: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	text   int
	money  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	bottom := []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}}
	format := moneyFormat

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	if s.text, err = f.NewStyle(&excelize.Style{Border: bottom}); err != nil {
		return s, fmt.Errorf("text style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{Border: bottom, CustomNumFmt: &format}); err != nil {
		return s, fmt.Errorf("money style: %w", err)
	}
	return s, nil
}

func writeHeader(f *excelize.File, styles sheetStyles, lastCol string) error {
	headers := make([]any, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, c.Width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetName, 1, 20); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "A1", lastCol+"1", styles.header)
}

func writeRow(f *excelize.File, styles sheetStyles, row int, emp employees.Employee) error {
	calc := payroll.ComputeExtended(emp.Salary).Rounded()

	termination := activeLabel
	if emp.TerminationDate != nil {
		termination = formatTimestamp(*emp.TerminationDate)
	}

	leading := []string{
		emp.ID, emp.FirstName, emp.LastName, emp.NationalID, string(emp.BloodType),
		emp.Phone, emp.ARL.Name, emp.EPS.Name, emp.PensionFund.Name,
	}
	amounts := []decimal.Decimal{
		calc.SalaryGross, calc.EmployeeEPS, calc.EmployerEPS, calc.EmployeePension,
		calc.EmployerPension, calc.NetSalary, calc.TotalEmployerCost,
	}
	trailing := []string{termination, formatTimestamp(emp.CreatedAt)}

	col := 1
	for _, text := range leading {
		if err := setText(f, styles.text, col, row, text); err != nil {
			return err
		}
		col++
	}
	for _, amount := range amounts {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellFloat(SheetName, cell, amount.InexactFloat64(), 2, 64); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, styles.money); err != nil {
			return err
		}
		col++
	}
	for _, text := range trailing {
		if err := setText(f, styles.text, col, row, text); err != nil {
			return err
		}
		col++
	}
	return nil
}

func setText(f *excelize.File, style, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStr(SheetName, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, cell, cell, style)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
