package mortgage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// CreateMortgageInput represents the input for creating a mortgage.
// Type must already be parsed with domain.ParseMortgageType.
type CreateMortgageInput struct {
	PropertyID   uuid.UUID
	LoanToValue  decimal.Decimal
	InterestRate decimal.Decimal
	Type         domain.MortgageType
	LoanTerm     *int
}

// UpdateMortgageInput is a partial update; nil fields are left untouched
type UpdateMortgageInput struct {
	PropertyID   *uuid.UUID
	LoanToValue  *decimal.Decimal
	InterestRate *decimal.Decimal
	Type         *domain.MortgageType
	LoanTerm     *int
}

// IsEmpty reports whether the update carries no fields
func (in UpdateMortgageInput) IsEmpty() bool {
	return in.PropertyID == nil &&
		in.LoanToValue == nil &&
		in.InterestRate == nil &&
		in.Type == nil &&
		in.LoanTerm == nil
}

// MortgageService handles mortgage CRUD
type MortgageService struct {
	MortgageRepo domain.MortgageRepository
	PropertyRepo domain.PropertyRepository
	Publisher    domain.EventPublisher
	logger       *zap.Logger
}

// NewMortgageService creates a new MortgageService instance
func NewMortgageService(
	mortgageRepo domain.MortgageRepository,
	propertyRepo domain.PropertyRepository,
	publisher domain.EventPublisher,
	logger *zap.Logger,
) *MortgageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MortgageService{
		MortgageRepo: mortgageRepo,
		PropertyRepo: propertyRepo,
		Publisher:    publisher,
		logger:       logger.Named("mortgage"),
	}
}

// Create stores a new mortgage against an existing property.
// The mortgage amount is derived as purchase price * LTV / 100.
func (s *MortgageService) Create(ctx context.Context, input CreateMortgageInput) (*domain.Mortgage, error) {
	mortgage := &domain.Mortgage{
		ID:           uuid.New(),
		PropertyID:   input.PropertyID,
		LoanToValue:  input.LoanToValue,
		InterestRate: input.InterestRate,
		Type:         input.Type,
		LoanTerm:     input.LoanTerm,
		CreatedAt:    time.Now().UTC(),
	}

	if err := mortgage.Validate(); err != nil {
		return nil, err
	}

	property, err := s.PropertyRepo.GetByID(ctx, mortgage.PropertyID)
	if err != nil {
		return nil, err
	}
	mortgage.Amount = domain.DeriveMortgageAmount(property.PurchasePrice, mortgage.LoanToValue)

	if err := s.MortgageRepo.Create(ctx, mortgage); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventMortgageCreated, mortgage.ID)
	return mortgage, nil
}

// Get retrieves a mortgage by ID
func (s *MortgageService) Get(ctx context.Context, id uuid.UUID) (*domain.Mortgage, error) {
	return s.MortgageRepo.GetByID(ctx, id)
}

// List returns one page of mortgages, optionally restricted to one property
func (s *MortgageService) List(ctx context.Context, page domain.Page, propertyID *uuid.UUID) ([]*domain.Mortgage, int, error) {
	page = page.Normalize()
	params := domain.ListParams{
		Limit:      page.Limit,
		Offset:     page.Offset(),
		PropertyID: propertyID,
	}

	total, err := s.MortgageRepo.Count(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count mortgages: %w", err)
	}

	mortgages, err := s.MortgageRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list mortgages: %w", err)
	}

	return mortgages, total, nil
}

// Update applies a partial update. Moving the mortgage to another property or
// changing its LTV re-derives the stored amount.
func (s *MortgageService) Update(ctx context.Context, id uuid.UUID, input UpdateMortgageInput) (*domain.Mortgage, error) {
	if input.IsEmpty() {
		return nil, &domain.ValidationError{Message: "no valid fields provided for update"}
	}

	mortgage, err := s.MortgageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rederive := false
	if input.PropertyID != nil && *input.PropertyID != mortgage.PropertyID {
		mortgage.PropertyID = *input.PropertyID
		rederive = true
	}
	if input.LoanToValue != nil && !input.LoanToValue.Equal(mortgage.LoanToValue) {
		mortgage.LoanToValue = *input.LoanToValue
		rederive = true
	}
	if input.InterestRate != nil {
		mortgage.InterestRate = *input.InterestRate
	}
	if input.Type != nil {
		mortgage.Type = *input.Type
	}
	if input.LoanTerm != nil {
		term := *input.LoanTerm
		mortgage.LoanTerm = &term
	}

	if err := mortgage.Validate(); err != nil {
		return nil, err
	}

	if rederive {
		property, err := s.PropertyRepo.GetByID(ctx, mortgage.PropertyID)
		if err != nil {
			return nil, err
		}
		mortgage.Amount = domain.DeriveMortgageAmount(property.PurchasePrice, mortgage.LoanToValue)
	}

	now := time.Now().UTC()
	mortgage.UpdatedAt = &now

	if err := s.MortgageRepo.Update(ctx, mortgage); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventMortgageUpdated, mortgage.ID)
	return mortgage, nil
}

// Delete removes a mortgage
func (s *MortgageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.MortgageRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.MortgageRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventMortgageDeleted, id)
	return nil
}

func (s *MortgageService) publish(ctx context.Context, eventType domain.EventType, id uuid.UUID) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, domain.NewEvent(eventType, id)); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", string(eventType)),
			zap.Stringer("mortgage_id", id),
			zap.Error(err))
	}
}
