package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// Fixed UUIDs for the demo records, so reseeding never duplicates them
var (
	DemoPropertyID             = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	DemoRepaymentMortgageID    = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	DemoInterestOnlyMortgageID = uuid.MustParse("00000000-0000-0000-0000-000000000202")
)

// DemoSeeder writes a sample property with one mortgage of each type
type DemoSeeder struct {
	propertyRepo domain.PropertyRepository
	mortgageRepo domain.MortgageRepository
	logger       *zap.Logger
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(propertyRepo domain.PropertyRepository, mortgageRepo domain.MortgageRepository, logger *zap.Logger) *DemoSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemoSeeder{
		propertyRepo: propertyRepo,
		mortgageRepo: mortgageRepo,
		logger:       logger.Named("seeder"),
	}
}

func demoProperty(now time.Time) *domain.Property {
	return &domain.Property{
		ID:             DemoPropertyID,
		Name:           "123 Elm Street",
		PurchasePrice:  decimal.NewFromInt(300000),
		RentalIncome:   decimal.NewFromInt(2500),
		RenovationCost: decimal.NewFromInt(50000),
		AdminCosts:     decimal.NewFromInt(3000),
		ManagementFees: decimal.NewFromInt(200),
		CreatedAt:      now,
	}
}

func demoMortgages(purchasePrice decimal.Decimal, now time.Time) []*domain.Mortgage {
	term := 30
	repaymentLTV := decimal.NewFromInt(75)
	interestOnlyLTV := decimal.NewFromInt(60)

	return []*domain.Mortgage{
		{
			ID:           DemoRepaymentMortgageID,
			PropertyID:   DemoPropertyID,
			LoanToValue:  repaymentLTV,
			InterestRate: decimal.NewFromFloat(2.5),
			Type:         domain.MortgageTypeRepayment,
			LoanTerm:     &term,
			Amount:       domain.DeriveMortgageAmount(purchasePrice, repaymentLTV),
			CreatedAt:    now,
		},
		{
			ID:           DemoInterestOnlyMortgageID,
			PropertyID:   DemoPropertyID,
			LoanToValue:  interestOnlyLTV,
			InterestRate: decimal.NewFromInt(3),
			Type:         domain.MortgageTypeInterestOnly,
			Amount:       domain.DeriveMortgageAmount(purchasePrice, interestOnlyLTV),
			CreatedAt:    now,
		},
	}
}

// Seed ensures the demo records exist. Existing records are left untouched.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	now := time.Now().UTC()

	property, err := s.propertyRepo.GetByID(ctx, DemoPropertyID)
	switch {
	case err == nil:
		// Already seeded; the stored price drives the mortgage amounts
	case domain.IsEntityNotFound(err, "property"):
		property = demoProperty(now)
		if err := property.Validate(); err != nil {
			return err
		}
		if err := s.propertyRepo.Create(ctx, property); err != nil {
			return fmt.Errorf("failed to seed demo property: %w", err)
		}
		s.logger.Info("seeded demo property", zap.Stringer("property_id", property.ID))
	default:
		return fmt.Errorf("failed to look up demo property: %w", err)
	}

	for _, m := range demoMortgages(property.PurchasePrice, now) {
		_, err := s.mortgageRepo.GetByID(ctx, m.ID)
		if err == nil {
			continue
		}
		if !domain.IsEntityNotFound(err, "mortgage") {
			return fmt.Errorf("failed to look up demo mortgage: %w", err)
		}

		if err := m.Validate(); err != nil {
			return err
		}
		if err := s.mortgageRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to seed demo mortgage: %w", err)
		}
		s.logger.Info("seeded demo mortgage",
			zap.Stringer("mortgage_id", m.ID),
			zap.String("mortgage_type", string(m.Type)))
	}

	return nil
}
