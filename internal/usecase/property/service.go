package property

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// CreatePropertyInput represents the input for creating a property
type CreatePropertyInput struct {
	Name           string
	PurchasePrice  decimal.Decimal
	RentalIncome   decimal.Decimal
	RenovationCost decimal.Decimal
	AdminCosts     decimal.Decimal
	ManagementFees decimal.Decimal
}

// UpdatePropertyInput is a partial update; nil fields are left untouched
type UpdatePropertyInput struct {
	Name           *string
	PurchasePrice  *decimal.Decimal
	RentalIncome   *decimal.Decimal
	RenovationCost *decimal.Decimal
	AdminCosts     *decimal.Decimal
	ManagementFees *decimal.Decimal
}

// IsEmpty reports whether the update carries no fields
func (in UpdatePropertyInput) IsEmpty() bool {
	return in.Name == nil &&
		in.PurchasePrice == nil &&
		in.RentalIncome == nil &&
		in.RenovationCost == nil &&
		in.AdminCosts == nil &&
		in.ManagementFees == nil
}

// PropertyService handles property CRUD
type PropertyService struct {
	PropertyRepo domain.PropertyRepository
	MortgageRepo domain.MortgageRepository
	Publisher    domain.EventPublisher
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService instance
func NewPropertyService(
	propertyRepo domain.PropertyRepository,
	mortgageRepo domain.MortgageRepository,
	publisher domain.EventPublisher,
	logger *zap.Logger,
) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		PropertyRepo: propertyRepo,
		MortgageRepo: mortgageRepo,
		Publisher:    publisher,
		logger:       logger.Named("property"),
	}
}

// Create validates and stores a new property
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error) {
	property := &domain.Property{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		PurchasePrice:  input.PurchasePrice,
		RentalIncome:   input.RentalIncome,
		RenovationCost: input.RenovationCost,
		AdminCosts:     input.AdminCosts,
		ManagementFees: input.ManagementFees,
		CreatedAt:      time.Now().UTC(),
	}

	if err := property.Validate(); err != nil {
		return nil, err
	}

	if err := s.PropertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventPropertyCreated, property.ID)
	return property, nil
}

// Get retrieves a property by ID
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return s.PropertyRepo.GetByID(ctx, id)
}

// List returns one page of properties and the total number of matches.
// search filters by a case-insensitive substring of the name.
func (s *PropertyService) List(ctx context.Context, page domain.Page, search string) ([]*domain.Property, int, error) {
	page = page.Normalize()
	params := domain.ListParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
		Search: strings.TrimSpace(search),
	}

	total, err := s.PropertyRepo.Count(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	properties, err := s.PropertyRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	return properties, total, nil
}

// Update applies a partial update to an existing property.
// Stored mortgage amounts are not re-derived when the purchase price changes.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*domain.Property, error) {
	if input.IsEmpty() {
		return nil, &domain.ValidationError{Message: "no valid fields provided for update"}
	}

	property, err := s.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		property.Name = strings.TrimSpace(*input.Name)
	}
	if input.PurchasePrice != nil {
		property.PurchasePrice = *input.PurchasePrice
	}
	if input.RentalIncome != nil {
		property.RentalIncome = *input.RentalIncome
	}
	if input.RenovationCost != nil {
		property.RenovationCost = *input.RenovationCost
	}
	if input.AdminCosts != nil {
		property.AdminCosts = *input.AdminCosts
	}
	if input.ManagementFees != nil {
		property.ManagementFees = *input.ManagementFees
	}

	if err := property.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	property.UpdatedAt = &now

	if err := s.PropertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventPropertyUpdated, property.ID)
	return property, nil
}

// Delete removes a property. Properties that still carry mortgages are kept.
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.PropertyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.MortgageRepo.CountByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count mortgages for property: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("property %s still has %d mortgage(s): %w", id, count, domain.ErrConflict)
	}

	if err := s.PropertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventPropertyDeleted, id)
	return nil
}

// publish is best effort: the write already succeeded
func (s *PropertyService) publish(ctx context.Context, eventType domain.EventType, id uuid.UUID) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, domain.NewEvent(eventType, id)); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", string(eventType)),
			zap.Stringer("property_id", id),
			zap.Error(err))
	}
}
