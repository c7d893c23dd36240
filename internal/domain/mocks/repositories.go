// Package mocks provides testify mocks for the domain ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// PropertyRepository is a mock implementation of domain.PropertyRepository
type PropertyRepository struct {
	mock.Mock
}

func (m *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PropertyRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Property, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Property), args.Error(1)
}

func (m *PropertyRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}

// MortgageRepository is a mock implementation of domain.MortgageRepository
type MortgageRepository struct {
	mock.Mock
}

func (m *MortgageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mortgage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}

func (m *MortgageRepository) Create(ctx context.Context, mortgage *domain.Mortgage) error {
	args := m.Called(ctx, mortgage)
	return args.Error(0)
}

func (m *MortgageRepository) Update(ctx context.Context, mortgage *domain.Mortgage) error {
	args := m.Called(ctx, mortgage)
	return args.Error(0)
}

func (m *MortgageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MortgageRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Mortgage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mortgage), args.Error(1)
}

func (m *MortgageRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}

func (m *MortgageRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	args := m.Called(ctx, propertyID)
	return args.Int(0), args.Error(1)
}

// EventPublisher is a mock implementation of domain.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// EventOfType matches a domain.Event argument by type and entity
func EventOfType(eventType domain.EventType, entityID uuid.UUID) interface{} {
	return mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == eventType && e.EntityID == entityID
	})
}
