package property

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/domain/mocks"
)

type fixture struct {
	service      *PropertyService
	propertyRepo *mocks.PropertyRepository
	mortgageRepo *mocks.MortgageRepository
	publisher    *mocks.EventPublisher
}

func newFixture() fixture {
	f := fixture{
		propertyRepo: new(mocks.PropertyRepository),
		mortgageRepo: new(mocks.MortgageRepository),
		publisher:    new(mocks.EventPublisher),
	}
	f.service = NewPropertyService(f.propertyRepo, f.mortgageRepo, f.publisher, zap.NewNop())
	return f
}

func validInput() CreatePropertyInput {
	return CreatePropertyInput{
		Name:           "123 Elm Street",
		PurchasePrice:  decimal.NewFromInt(300000),
		RentalIncome:   decimal.NewFromInt(2500),
		RenovationCost: decimal.NewFromInt(50000),
		AdminCosts:     decimal.NewFromInt(3000),
		ManagementFees: decimal.NewFromInt(200),
	}
}

func storedProperty() *domain.Property {
	return &domain.Property{
		ID:             uuid.New(),
		Name:           "123 Elm Street",
		PurchasePrice:  decimal.NewFromInt(300000),
		RentalIncome:   decimal.NewFromInt(2500),
		RenovationCost: decimal.NewFromInt(50000),
		AdminCosts:     decimal.NewFromInt(3000),
		ManagementFees: decimal.NewFromInt(200),
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.propertyRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
		return p.ID != uuid.Nil &&
			p.Name == "123 Elm Street" &&
			p.PurchasePrice.Equal(decimal.NewFromInt(300000)) &&
			!p.CreatedAt.IsZero() &&
			p.UpdatedAt == nil
	})).Return(nil)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventPropertyCreated
	})).Return(nil)

	property, err := f.service.Create(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "123 Elm Street", property.Name)
	f.propertyRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCreate_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	input := validInput()
	input.PurchasePrice = decimal.Zero

	property, err := f.service.Create(ctx, input)

	assert.Nil(t, property)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "purchase_price")
	f.propertyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreate_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.propertyRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	property, err := f.service.Create(ctx, validInput())

	assert.NoError(t, err)
	assert.NotNil(t, property)
}

func TestCreate_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.propertyRepo.On("Create", ctx, mock.Anything).Return(errors.New("failed to create property: disk full"))

	_, err := f.service.Create(ctx, validInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestList_NormalizesPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	expected := domain.ListParams{Limit: 10, Offset: 0, Search: "elm"}
	properties := []*domain.Property{storedProperty()}

	f.propertyRepo.On("Count", ctx, expected).Return(1, nil)
	f.propertyRepo.On("List", ctx, expected).Return(properties, nil)

	got, total, err := f.service.List(ctx, domain.Page{Page: 0, Limit: 0}, "  elm ")

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, properties, got)
	f.propertyRepo.AssertExpectations(t)
}

func TestList_Offset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	expected := domain.ListParams{Limit: 5, Offset: 10}
	f.propertyRepo.On("Count", ctx, expected).Return(12, nil)
	f.propertyRepo.On("List", ctx, expected).Return([]*domain.Property{}, nil)

	_, total, err := f.service.List(ctx, domain.Page{Page: 3, Limit: 5}, "")

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	f.propertyRepo.AssertExpectations(t)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	existing := storedProperty()
	newName := "456 Elm Street"
	newIncome := decimal.NewFromInt(4000)

	f.propertyRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	f.propertyRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Name == newName &&
			p.RentalIncome.Equal(newIncome) &&
			p.PurchasePrice.Equal(decimal.NewFromInt(300000)) &&
			p.UpdatedAt != nil
	})).Return(nil)
	f.publisher.On("Publish", ctx, mocks.EventOfType(domain.EventPropertyUpdated, existing.ID)).Return(nil)

	updated, err := f.service.Update(ctx, existing.ID, UpdatePropertyInput{
		Name:         &newName,
		RentalIncome: &newIncome,
	})

	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.NotNil(t, updated.UpdatedAt)
	f.propertyRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdate_EmptyInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.Update(ctx, uuid.New(), UpdatePropertyInput{})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "no valid fields provided for update")
	f.propertyRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	id := uuid.New()
	name := "x"
	f.propertyRepo.On("GetByID", ctx, id).Return(nil, domain.NewNotFound("property"))

	_, err := f.service.Update(ctx, id, UpdatePropertyInput{Name: &name})

	assert.True(t, domain.IsEntityNotFound(err, "property"))
	f.propertyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_InvalidResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	existing := storedProperty()
	negative := decimal.NewFromInt(-5)
	f.propertyRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)

	_, err := f.service.Update(ctx, existing.ID, UpdatePropertyInput{AdminCosts: &negative})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	f.propertyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	existing := storedProperty()
	f.propertyRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	f.mortgageRepo.On("CountByProperty", ctx, existing.ID).Return(0, nil)
	f.propertyRepo.On("Delete", ctx, existing.ID).Return(nil)
	f.publisher.On("Publish", ctx, mocks.EventOfType(domain.EventPropertyDeleted, existing.ID)).Return(nil)

	err := f.service.Delete(ctx, existing.ID)

	require.NoError(t, err)
	f.propertyRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestDelete_WithMortgagesIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	existing := storedProperty()
	f.propertyRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	f.mortgageRepo.On("CountByProperty", ctx, existing.ID).Return(2, nil)

	err := f.service.Delete(ctx, existing.ID)

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "2 mortgage(s)")
	f.propertyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	id := uuid.New()
	f.propertyRepo.On("GetByID", ctx, id).Return(nil, domain.NewNotFound("property"))

	err := f.service.Delete(ctx, id)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.mortgageRepo.AssertNotCalled(t, "CountByProperty", mock.Anything, mock.Anything)
}
