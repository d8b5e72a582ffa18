package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/model"
)

type stubGenerator struct {
	book model.ContractBook
}

func (s *stubGenerator) Generate(book model.ContractBook) ([]byte, error) {
	s.book = book
	return []byte("rendered"), nil
}

func TestExportExcel_AssemblesBook(t *testing.T) {
	clients := new(MockClientStore)
	contracts := new(MockContractStore)
	contractSvc := NewContractService(contracts)
	clientSvc := NewClientService(clients, contractSvc, nopTx{})
	generator := &stubGenerator{}
	svc := NewExportService(clientSvc, contractSvc, generator, generator)

	clientID := uuid.New()
	clients.On("FindByID", mock.Anything, clientID).Return(companyFixture(clientID), nil)
	active := []model.Contract{*contractFixture(uuid.New(), clientID)}
	contracts.On("FindActiveByClient", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Return(active, nil)
	contracts.On("SumActiveCostByClient", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("400.00"), nil)

	result, err := svc.ExportExcel(context.Background(), clientID)
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), result.Content)
	assert.Contains(t, result.FileName, "contracts-ACME-Insurance")
	assert.Contains(t, result.FileName, ".xlsx")

	assert.Len(t, generator.book.ActiveContracts, 1)
	assert.True(t, generator.book.TotalActiveCost.Equal(decimal.RequireFromString("400.00")))
}

func TestExport_SingleEvaluationInstant(t *testing.T) {
	clients := new(MockClientStore)
	contracts := new(MockContractStore)
	contractSvc := NewContractService(contracts)
	clientSvc := NewClientService(clients, contractSvc, nopTx{})
	generator := &stubGenerator{}
	svc := NewExportService(clientSvc, contractSvc, generator, generator)

	clientID := uuid.New()
	clients.On("FindByID", mock.Anything, clientID).Return(companyFixture(clientID), nil)

	var listedAt, summedAt time.Time
	contracts.On("FindActiveByClient", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { listedAt = args.Get(2).(time.Time) }).
		Return([]model.Contract{}, nil)
	contracts.On("SumActiveCostByClient", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { summedAt = args.Get(2).(time.Time) }).
		Return(decimal.Zero, nil)

	_, err := svc.ExportExcel(context.Background(), clientID)
	require.NoError(t, err)

	assert.Equal(t, listedAt, summedAt)
	assert.Equal(t, listedAt, generator.book.GeneratedAt)
}

func TestExportPDF_UnknownClient(t *testing.T) {
	clients := new(MockClientStore)
	contracts := new(MockContractStore)
	contractSvc := NewContractService(contracts)
	clientSvc := NewClientService(clients, contractSvc, nopTx{})
	svc := NewExportService(clientSvc, contractSvc, &stubGenerator{}, &stubGenerator{})

	clientID := uuid.New()
	clients.On("FindByID", mock.Anything, clientID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ExportPDF(context.Background(), clientID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
