package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

const propertyColumns = `id, property_name, purchase_price, rental_income, renovation_cost,
		admin_costs, management_fees, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// propertyRepository implements domain.PropertyRepository
type propertyRepository struct {
	db *DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *DB) domain.PropertyRepository {
	return &propertyRepository{db: db}
}

// GetByID retrieves a property by its ID
func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("property")
		}
		return nil, fmt.Errorf("failed to get property by ID: %w", err)
	}

	return property, nil
}

// Create creates a new property
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.Name,
		property.PurchasePrice.String(),
		property.RentalIncome.String(),
		property.RenovationCost.String(),
		property.AdminCosts.String(),
		property.ManagementFees.String(),
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

// Update overwrites the mutable columns of a property
func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET property_name = $2, purchase_price = $3, rental_income = $4, renovation_cost = $5,
			admin_costs = $6, management_fees = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.Name,
		property.PurchasePrice.String(),
		property.RentalIncome.String(),
		property.RenovationCost.String(),
		property.AdminCosts.String(),
		property.ManagementFees.String(),
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	return requireAffected(result, "property")
}

// Delete removes a property by its ID
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	return requireAffected(result, "property")
}

// List retrieves a page of properties, newest first
func (r *propertyRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Property, error) {
	where, args := propertyFilter(params)
	args = append(args, params.Limit, params.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, propertyColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

// Count returns the number of properties matching params
func (r *propertyRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	where, args := propertyFilter(params)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}

	return count, nil
}

func propertyFilter(params domain.ListParams) (string, []any) {
	if params.Search == "" {
		return "", nil
	}
	return `WHERE property_name ILIKE $1 ESCAPE '\'`, []any{"%" + escapeLike(params.Search) + "%"}
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	var purchasePrice, rentalIncome, renovationCost, adminCosts, managementFees string
	var updatedAt sql.NullTime

	err := row.Scan(
		&property.ID,
		&property.Name,
		&purchasePrice,
		&rentalIncome,
		&renovationCost,
		&adminCosts,
		&managementFees,
		&property.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse NUMERIC columns
	amounts := []struct {
		column string
		raw    string
		dst    *decimal.Decimal
	}{
		{"purchase_price", purchasePrice, &property.PurchasePrice},
		{"rental_income", rentalIncome, &property.RentalIncome},
		{"renovation_cost", renovationCost, &property.RenovationCost},
		{"admin_costs", adminCosts, &property.AdminCosts},
		{"management_fees", managementFees, &property.ManagementFees},
	}
	for _, a := range amounts {
		value, err := decimal.NewFromString(a.raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", a.column, err)
		}
		*a.dst = value
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		property.UpdatedAt = &t
	}

	return &property, nil
}

// requireAffected turns a zero-row write into a NotFoundError
func requireAffected(result sql.Result, entity string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(entity)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
