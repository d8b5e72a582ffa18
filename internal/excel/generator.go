package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ricci/insurance-api/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a client's contract book as a workbook: one summary
// sheet plus a listing of the active contracts.
func (g *Generator) Generate(book model.ContractBook) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Contracts"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Client")
	set("B1", book.Client.Name)
	set("A2", "Client ID")
	set("B2", book.Client.ClientID.String())
	set("A3", "Client type")
	set("B3", clientKindLabel(book.Client))
	set("A4", "Generated at")
	set("B4", formatDateTime(book.GeneratedAt))
	set("A5", "Active contracts")
	set("B5", len(book.ActiveContracts))
	set("A6", "Total active cost")
	set("B6", book.TotalActiveCost.StringFixed(2))

	tableRow := 8
	headers := []string{"Contract ID", "Start date", "End date", "Last update", "Cost"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, contract := range book.ActiveContracts {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), contract.ContractID.String())
		set(fmt.Sprintf("B%d", row), formatDateTime(contract.StartDate))
		set(fmt.Sprintf("C%d", row), formatOptionalDateTime(contract.EndDate))
		set(fmt.Sprintf("D%d", row), formatDateTime(contract.UpdateDate))
		set(fmt.Sprintf("E%d", row), contract.CostAmount.StringFixed(2))
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "D", 22)
	_ = file.SetColWidth(sheet, "E", "E", 14)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clientKindLabel(client model.Client) string {
	switch client.Kind {
	case model.KindPerson:
		return "Person"
	case model.KindCompany:
		return "Company"
	default:
		return string(client.Kind)
	}
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatOptionalDateTime(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return formatDateTime(*t)
}
