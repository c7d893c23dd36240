package domain

import (
	"context"

	"github.com/google/uuid"
)

// ListParams narrows and paginates a List/Count call.
// Search applies to property names; PropertyID applies to mortgages.
type ListParams struct {
	Limit      int
	Offset     int
	Search     string
	PropertyID *uuid.UUID
}

// PropertyRepository defines the interface for property persistence operations
type PropertyRepository interface {
	// GetByID retrieves a property by its ID
	// Returns a *NotFoundError when no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// Create creates a new property
	Create(ctx context.Context, property *Property) error

	// Update overwrites every mutable column of an existing property
	Update(ctx context.Context, property *Property) error

	// Delete removes a property by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves a page of properties, newest first
	List(ctx context.Context, params ListParams) ([]*Property, error)

	// Count returns the number of properties matching params (Limit/Offset ignored)
	Count(ctx context.Context, params ListParams) (int, error)
}

// MortgageRepository defines the interface for mortgage persistence operations
type MortgageRepository interface {
	// GetByID retrieves a mortgage by its ID
	// Returns a *NotFoundError when no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*Mortgage, error)

	// Create creates a new mortgage
	Create(ctx context.Context, mortgage *Mortgage) error

	// Update overwrites every mutable column of an existing mortgage
	Update(ctx context.Context, mortgage *Mortgage) error

	// Delete removes a mortgage by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves a page of mortgages, newest first
	// If params.PropertyID is set only that property's mortgages are returned
	List(ctx context.Context, params ListParams) ([]*Mortgage, error)

	// Count returns the number of mortgages matching params
	Count(ctx context.Context, params ListParams) (int, error)

	// CountByProperty returns how many mortgages reference the property
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
}

// EventPublisher announces changes to properties and mortgages
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
