package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ricci/insurance-api/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(book model.ContractBook) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Contract book", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", formatDateTime(book.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addClientBlock(pdf, book.Client)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Active contracts", "", 1, "L", false, 0, "")

	headers := []string{"Contract", "Start", "End", "Cost"}
	colWidths := []float64{70, 35, 35, 40}
	drawTableRow(pdf, headers, colWidths, true)

	for _, contract := range book.ActiveContracts {
		row := []string{
			contract.ContractID.String(),
			formatDate(contract.StartDate),
			formatOptionalDate(contract.EndDate),
			contract.CostAmount.StringFixed(2),
		}
		drawTableRow(pdf, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total active cost: %s", book.TotalActiveCost.StringFixed(2)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addClientBlock(pdf *gofpdf.Fpdf, client model.Client) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	lines := []string{
		client.Name,
		fmt.Sprintf("ID: %s", client.ClientID.String()),
	}
	switch client.Kind {
	case model.KindPerson:
		if client.Birthdate != nil {
			lines = append(lines, fmt.Sprintf("Birthdate: %s", formatDate(*client.Birthdate)))
		}
	case model.KindCompany:
		if client.CompanyIdentifier != nil {
			lines = append(lines, fmt.Sprintf("Company identifier: %s", *client.CompanyIdentifier))
		}
	}
	lines = append(lines,
		fmt.Sprintf("Phone: %s", safeValue(client.Phone)),
		fmt.Sprintf("Email: %s", safeValue(client.Email)),
	)
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "-"
	}
	return *value
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return formatDate(*t)
}

func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
