package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
)

// MortgagePayment pairs a stored mortgage with its computed monthly payment
type MortgagePayment struct {
	Mortgage       *domain.Mortgage
	MonthlyPayment decimal.Decimal
}

// PropertyDetail represents a property together with its financing
type PropertyDetail struct {
	Property            *domain.Property
	Mortgages           []MortgagePayment
	TotalDebt           decimal.Decimal
	TotalMonthlyPayment decimal.Decimal
	MonthlyCashflow     decimal.Decimal
	// Skipped lists mortgages whose payment could not be computed
	Skipped []uuid.UUID
}

// Summary aggregates every property in the portfolio
type Summary struct {
	PropertyCount       int
	MortgageCount       int
	TotalValue          decimal.Decimal
	TotalDebt           decimal.Decimal
	Equity              decimal.Decimal
	MonthlyRentalIncome decimal.Decimal
	MonthlyDebtService  decimal.Decimal
}

// PortfolioService handles portfolio-level read operations
type PortfolioService struct {
	PropertyRepo domain.PropertyRepository
	MortgageRepo domain.MortgageRepository
	logger       *zap.Logger
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(
	propertyRepo domain.PropertyRepository,
	mortgageRepo domain.MortgageRepository,
	logger *zap.Logger,
) *PortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioService{
		PropertyRepo: propertyRepo,
		MortgageRepo: mortgageRepo,
		logger:       logger.Named("portfolio"),
	}
}

// GetPropertyDetail returns a property, its mortgages and their payments.
// Logic:
//   - TotalDebt: sum of stored mortgage amounts
//   - TotalMonthlyPayment: sum of monthly payments, rounded to cents
//   - MonthlyCashflow: rental income - management fees - TotalMonthlyPayment
//
// A mortgage whose payment cannot be computed still counts toward TotalDebt
// but is listed in Skipped instead of Mortgages, as GetSummary does.
func (s *PortfolioService) GetPropertyDetail(ctx context.Context, id uuid.UUID) (*PropertyDetail, error) {
	property, err := s.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mortgages, err := s.mortgagesFor(ctx, &property.ID)
	if err != nil {
		return nil, err
	}

	detail := &PropertyDetail{
		Property:            property,
		Mortgages:           make([]MortgagePayment, 0, len(mortgages)),
		TotalDebt:           decimal.Zero,
		TotalMonthlyPayment: decimal.Zero,
		Skipped:             []uuid.UUID{},
	}

	for _, m := range mortgages {
		detail.TotalDebt = detail.TotalDebt.Add(m.Amount)

		monthly, err := payment.Calculate(m)
		if err != nil {
			s.logger.Warn("skipping mortgage in property detail",
				zap.Stringer("property_id", property.ID),
				zap.Stringer("mortgage_id", m.ID),
				zap.Error(err),
			)
			detail.Skipped = append(detail.Skipped, m.ID)
			continue
		}
		amount := decimal.NewFromFloat(monthly).Round(2)

		detail.Mortgages = append(detail.Mortgages, MortgagePayment{Mortgage: m, MonthlyPayment: amount})
		detail.TotalMonthlyPayment = detail.TotalMonthlyPayment.Add(amount)
	}

	detail.MonthlyCashflow = property.RentalIncome.
		Sub(property.ManagementFees).
		Sub(detail.TotalMonthlyPayment)

	return detail, nil
}

// GetSummary aggregates every property and mortgage
func (s *PortfolioService) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		TotalValue:          decimal.Zero,
		TotalDebt:           decimal.Zero,
		MonthlyRentalIncome: decimal.Zero,
		MonthlyDebtService:  decimal.Zero,
	}

	// 1. Sum property values and rental income
	for offset := 0; ; offset += domain.MaxPageLimit {
		properties, err := s.PropertyRepo.List(ctx, domain.ListParams{Limit: domain.MaxPageLimit, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("failed to list properties: %w", err)
		}
		for _, p := range properties {
			summary.PropertyCount++
			summary.TotalValue = summary.TotalValue.Add(p.PurchasePrice)
			summary.MonthlyRentalIncome = summary.MonthlyRentalIncome.Add(p.RentalIncome)
		}
		if len(properties) < domain.MaxPageLimit {
			break
		}
	}

	// 2. Sum debt and monthly payments
	mortgages, err := s.mortgagesFor(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range mortgages {
		summary.MortgageCount++
		summary.TotalDebt = summary.TotalDebt.Add(m.Amount)

		monthly, err := payment.Calculate(m)
		if err != nil {
			// A single bad record must not hide the rest of the portfolio
			s.logger.Warn("skipping mortgage in summary",
				zap.Stringer("mortgage_id", m.ID),
				zap.Error(err))
			continue
		}
		summary.MonthlyDebtService = summary.MonthlyDebtService.Add(decimal.NewFromFloat(monthly).Round(2))
	}

	// 3. Equity
	summary.Equity = summary.TotalValue.Sub(summary.TotalDebt)

	return summary, nil
}

// mortgagesFor pages through every mortgage, optionally for one property
func (s *PortfolioService) mortgagesFor(ctx context.Context, propertyID *uuid.UUID) ([]*domain.Mortgage, error) {
	var all []*domain.Mortgage
	for offset := 0; ; offset += domain.MaxPageLimit {
		batch, err := s.MortgageRepo.List(ctx, domain.ListParams{
			Limit:      domain.MaxPageLimit,
			Offset:     offset,
			PropertyID: propertyID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list mortgages: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < domain.MaxPageLimit {
			return all, nil
		}
	}
}
