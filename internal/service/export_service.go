package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ricci/insurance-api/internal/model"
)

type ExcelGenerator interface {
	Generate(book model.ContractBook) ([]byte, error)
}

type PDFGenerator interface {
	Generate(book model.ContractBook) ([]byte, error)
}

// ExportService assembles a client's contract book and renders it
// through the configured generator.
type ExportService struct {
	clients   *ClientService
	contracts *ContractService
	excel     ExcelGenerator
	pdf       PDFGenerator
}

func NewExportService(clients *ClientService, contracts *ContractService, excel ExcelGenerator, pdf PDFGenerator) *ExportService {
	return &ExportService{
		clients:   clients,
		contracts: contracts,
		excel:     excel,
		pdf:       pdf,
	}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// buildBook evaluates the contract list and the total at one instant,
// the book's GeneratedAt, so the two never disagree at an endDate
// boundary.
func (s *ExportService) buildBook(ctx context.Context, clientID uuid.UUID) (*model.ContractBook, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active, err := s.contracts.activeContractsAt(ctx, clientID, now)
	if err != nil {
		return nil, err
	}
	total, err := s.contracts.sumActiveCostAt(ctx, clientID, now)
	if err != nil {
		return nil, err
	}
	return &model.ContractBook{
		Client:          *client,
		ActiveContracts: active,
		TotalActiveCost: total,
		GeneratedAt:     now,
	}, nil
}

func (s *ExportService) ExportExcel(ctx context.Context, clientID uuid.UUID) (*ExportResult, error) {
	book, err := s.buildBook(ctx, clientID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*book)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(*book, "xlsx"),
		Content:  content,
	}, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, clientID uuid.UUID) (*ExportResult, error) {
	book, err := s.buildBook(ctx, clientID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*book)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(*book, "pdf"),
		Content:  content,
	}, nil
}

func buildFileName(book model.ContractBook, extension string) string {
	name := sanitizeFileName(book.Client.Name)
	if name == "" {
		name = book.Client.ClientID.String()
	}
	return fmt.Sprintf("contracts-%s-%s.%s", name, book.GeneratedAt.Format("20060102"), extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
