package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type payslipField struct {
	label string
	value string
}

func renderPayslipPDF(row PayrollRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+row.MonthYear.Format("January 2006"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Payslip", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, row.MonthYear.Format("January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	fields := []payslipField{
		{"Employee", row.Name},
		{"Position", row.Position},
		{"Department", row.Department},
		{"Month", row.MonthYear.Format("2006-01")},
		{"Basic Salary", row.BasicSalary.StringFixed(2)},
		{"Net Salary", row.NetSalary.StringFixed(2)},
		{"Status", row.Status},
	}
	for _, f := range fields {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 9, f.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, f.value, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", generatedAt.UTC().Format(time.RFC1123)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
