package contracts

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"peoplehub/internal/domain/contract"
)

func writePDF(w io.Writer, con *contract.Contract) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employment Contract")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Contract Number: %s", con.ContractNumber))
	pdf.Ln(7)
	if con.EmployeeFirstName != nil && con.EmployeeLastName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", *con.EmployeeFirstName, *con.EmployeeLastName))
		pdf.Ln(7)
	}
	if con.EmployeeCode != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee Code: %s", *con.EmployeeCode))
		pdf.Ln(7)
	}
	if con.JobTitle != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", *con.JobTitle))
		pdf.Ln(7)
	}
	if con.DepartmentName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", *con.DepartmentName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Contract Type: %s", con.ContractType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Start Date: %s", con.StartDate.Format("2006-01-02")))
	pdf.Ln(7)
	if con.EndDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("End Date: %s", con.EndDate.Format("2006-01-02")))
		pdf.Ln(7)
	}
	if con.Salary != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Salary: %.2f", *con.Salary))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", con.Status))
	pdf.Ln(10)

	if con.Terms != nil && *con.Terms != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Terms")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, *con.Terms, "", "L", false)
		pdf.Ln(4)
	}

	if con.SignedAt != nil {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Signed at: %s", con.SignedAt.Format("2006-01-02 15:04")))
	}

	return pdf.Output(w)
}
