package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/domain/mocks"
)

func intPtr(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixtureProperty() *domain.Property {
	return &domain.Property{
		ID:             uuid.New(),
		Name:           "123 Elm Street",
		PurchasePrice:  dec("300000"),
		RentalIncome:   dec("2500"),
		ManagementFees: dec("200"),
	}
}

func fixtureMortgages(propertyID uuid.UUID) []*domain.Mortgage {
	return []*domain.Mortgage{
		{
			ID:           uuid.New(),
			PropertyID:   propertyID,
			LoanToValue:  dec("75"),
			InterestRate: dec("2.5"),
			Type:         domain.MortgageTypeRepayment,
			LoanTerm:     intPtr(30),
			Amount:       dec("225000"),
		},
		{
			ID:           uuid.New(),
			PropertyID:   propertyID,
			LoanToValue:  dec("33.3333"),
			InterestRate: dec("3"),
			Type:         domain.MortgageTypeInterestOnly,
			Amount:       dec("100000"),
		},
	}
}

func TestGetPropertyDetail(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, zaptest.NewLogger(t))

	prop := fixtureProperty()
	mortgages := fixtureMortgages(prop.ID)

	propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil)
	mortgageRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit, PropertyID: &prop.ID}).
		Return(mortgages, nil)

	detail, err := service.GetPropertyDetail(ctx, prop.ID)

	require.NoError(t, err)
	require.Len(t, detail.Mortgages, 2)
	assert.Equal(t, "889.02", detail.Mortgages[0].MonthlyPayment.StringFixed(2))
	assert.Equal(t, "250.00", detail.Mortgages[1].MonthlyPayment.StringFixed(2))
	assert.Equal(t, "325000.00", detail.TotalDebt.StringFixed(2))
	assert.Equal(t, "1139.02", detail.TotalMonthlyPayment.StringFixed(2))
	assert.Equal(t, "1160.98", detail.MonthlyCashflow.StringFixed(2))
	assert.Empty(t, detail.Skipped)
}

func TestGetPropertyDetail_NoMortgages(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, nil)

	prop := fixtureProperty()
	propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil)
	mortgageRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit, PropertyID: &prop.ID}).
		Return([]*domain.Mortgage{}, nil)

	detail, err := service.GetPropertyDetail(ctx, prop.ID)

	require.NoError(t, err)
	assert.Empty(t, detail.Mortgages)
	assert.True(t, detail.TotalMonthlyPayment.IsZero())
	assert.Equal(t, "2300.00", detail.MonthlyCashflow.StringFixed(2))
}

func TestGetPropertyDetail_PropertyNotFound(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, nil)

	id := uuid.New()
	propertyRepo.On("GetByID", ctx, id).Return(nil, domain.NewNotFound("property"))

	_, err := service.GetPropertyDetail(ctx, id)

	assert.True(t, domain.IsEntityNotFound(err, "property"))
	mortgageRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetPropertyDetail_UnsupportedMortgage(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, zaptest.NewLogger(t))

	prop := fixtureProperty()
	mortgages := fixtureMortgages(prop.ID)
	mortgages[1].Type = domain.MortgageType("balloon")

	propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil)
	mortgageRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit, PropertyID: &prop.ID}).
		Return(mortgages, nil)

	detail, err := service.GetPropertyDetail(ctx, prop.ID)

	require.NoError(t, err)
	require.Len(t, detail.Mortgages, 1)
	assert.Equal(t, mortgages[0].ID, detail.Mortgages[0].Mortgage.ID)
	assert.Equal(t, []uuid.UUID{mortgages[1].ID}, detail.Skipped)
	// The skipped loan is still owed
	assert.Equal(t, "325000.00", detail.TotalDebt.StringFixed(2))
	assert.Equal(t, "889.02", detail.TotalMonthlyPayment.StringFixed(2))
	assert.Equal(t, "1410.98", detail.MonthlyCashflow.StringFixed(2))
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, zaptest.NewLogger(t))

	first := fixtureProperty()
	second := fixtureProperty()
	second.PurchasePrice = dec("150000")
	second.RentalIncome = dec("1200")

	mortgages := fixtureMortgages(first.ID)
	broken := &domain.Mortgage{
		ID:         uuid.New(),
		PropertyID: second.ID,
		Type:       domain.MortgageType("balloon"),
		Amount:     dec("50000"),
	}
	mortgages = append(mortgages, broken)

	propertyRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit}).
		Return([]*domain.Property{first, second}, nil)
	mortgageRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit}).
		Return(mortgages, nil)

	summary, err := service.GetSummary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.PropertyCount)
	assert.Equal(t, 3, summary.MortgageCount)
	assert.Equal(t, "450000.00", summary.TotalValue.StringFixed(2))
	assert.Equal(t, "375000.00", summary.TotalDebt.StringFixed(2))
	assert.Equal(t, "75000.00", summary.Equity.StringFixed(2))
	assert.Equal(t, "3700.00", summary.MonthlyRentalIncome.StringFixed(2))
	// The unsupported mortgage counts toward debt but not toward debt service
	assert.Equal(t, "1139.02", summary.MonthlyDebtService.StringFixed(2))
}

func TestGetSummary_ListFailure(t *testing.T) {
	ctx := context.Background()
	propertyRepo := new(mocks.PropertyRepository)
	mortgageRepo := new(mocks.MortgageRepository)
	service := NewPortfolioService(propertyRepo, mortgageRepo, nil)

	propertyRepo.On("List", ctx, domain.ListParams{Limit: domain.MaxPageLimit}).
		Return(nil, errors.New("connection refused"))

	_, err := service.GetSummary(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list properties")
}
