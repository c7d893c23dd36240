package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/amortization"
)

// Result pairs a mortgage with its computed monthly payment
type Result struct {
	MortgageID     uuid.UUID
	MonthlyPayment float64
}

// Resolver computes monthly payments for stored mortgages.
// It never writes and never caches: every call re-reads both records.
type Resolver struct {
	MortgageRepo domain.MortgageRepository
	PropertyRepo domain.PropertyRepository
	logger       *zap.Logger
}

// NewResolver creates a new Resolver instance
func NewResolver(mortgageRepo domain.MortgageRepository, propertyRepo domain.PropertyRepository, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		MortgageRepo: mortgageRepo,
		PropertyRepo: propertyRepo,
		logger:       logger.Named("payment"),
	}
}

// ResolvePayment looks up the mortgage and its property, selects the formula for
// the mortgage type and returns the monthly payment.
// The mortgage's stored amount, rate and term are the only calculation inputs.
func (r *Resolver) ResolvePayment(ctx context.Context, mortgageID uuid.UUID) (*Result, error) {
	mortgage, err := r.MortgageRepo.GetByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}

	// The store enforces the foreign key, so a miss here means corrupted data
	if _, err := r.PropertyRepo.GetByID(ctx, mortgage.PropertyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("mortgage references a missing property",
				zap.Stringer("mortgage_id", mortgage.ID),
				zap.Stringer("property_id", mortgage.PropertyID))
			return nil, domain.NewNotFound("property")
		}
		return nil, err
	}

	monthly, err := Calculate(mortgage)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolved monthly payment",
		zap.Stringer("mortgage_id", mortgage.ID),
		zap.String("mortgage_type", string(mortgage.Type)),
		zap.Float64("monthly_payment", monthly))

	return &Result{
		MortgageID:     mortgage.ID,
		MonthlyPayment: monthly,
	}, nil
}

// Calculate applies the formula matching the mortgage type
func Calculate(m *domain.Mortgage) (float64, error) {
	principal := m.Amount.InexactFloat64()
	rate := m.InterestRate.InexactFloat64()

	switch m.Type {
	case domain.MortgageTypeInterestOnly:
		return amortization.InterestOnlyPayment(principal, rate), nil
	case domain.MortgageTypeRepayment:
		if m.LoanTerm == nil || *m.LoanTerm <= 0 {
			return 0, fmt.Errorf("mortgage %s: %w", m.ID, &domain.ValidationError{
				Field:   "loan_term",
				Message: "is required for repayment mortgages",
			})
		}
		return amortization.RepaymentPayment(principal, rate, *m.LoanTerm), nil
	default:
		return 0, &domain.UnsupportedTypeError{Value: string(m.Type)}
	}
}
