package sqlite

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

type rowScanner interface {
	Scan(dest ...any) error
}

// PropertyRepository implements domain.PropertyRepository on SQLite
type PropertyRepository struct {
	db *DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ?`

	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("property")
		}
		return nil, fmt.Errorf("failed to get property by ID: %w", err)
	}

	return property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `INSERT INTO properties (` + propertyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		property.ID.String(),
		property.Name,
		property.PurchasePrice.String(),
		property.RentalIncome.String(),
		property.RenovationCost.String(),
		property.AdminCosts.String(),
		property.ManagementFees.String(),
		formatTime(property.CreatedAt),
		formatNullableTime(property.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET property_name = ?, purchase_price = ?, rental_income = ?, renovation_cost = ?,
			admin_costs = ?, management_fees = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		property.Name,
		property.PurchasePrice.String(),
		property.RentalIncome.String(),
		property.RenovationCost.String(),
		property.AdminCosts.String(),
		property.ManagementFees.String(),
		formatNullableTime(property.UpdatedAt),
		property.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	return requireAffected(result, "property")
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	return requireAffected(result, "property")
}

func (r *PropertyRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Property, error) {
	where, args := propertyFilter(params)
	query := `SELECT ` + propertyColumns + ` FROM properties ` + where +
		` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, append(args, params.Limit, params.Offset)...)
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

func (r *PropertyRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	where, args := propertyFilter(params)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}

	return count, nil
}

// propertyFilter matches names case-insensitively; SQLite LIKE folds ASCII only
func propertyFilter(params domain.ListParams) (string, []any) {
	if params.Search == "" {
		return "", nil
	}
	return `WHERE property_name LIKE ? ESCAPE '\'`, []any{"%" + likeEscaper.Replace(params.Search) + "%"}
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	var id, createdAt string
	var purchasePrice, rentalIncome, renovationCost, adminCosts, managementFees string
	var updatedAt sql.NullString

	err := row.Scan(
		&id,
		&property.Name,
		&purchasePrice,
		&rentalIncome,
		&renovationCost,
		&adminCosts,
		&managementFees,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if property.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse id: %w", err)
	}
	if property.PurchasePrice, err = parseDecimal("purchase_price", purchasePrice); err != nil {
		return nil, err
	}
	if property.RentalIncome, err = parseDecimal("rental_income", rentalIncome); err != nil {
		return nil, err
	}
	if property.RenovationCost, err = parseDecimal("renovation_cost", renovationCost); err != nil {
		return nil, err
	}
	if property.AdminCosts, err = parseDecimal("admin_costs", adminCosts); err != nil {
		return nil, err
	}
	if property.ManagementFees, err = parseDecimal("management_fees", managementFees); err != nil {
		return nil, err
	}
	if property.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if property.UpdatedAt, err = parseNullableTime("updated_at", updatedAt); err != nil {
		return nil, err
	}

	return &property, nil
}

func parseDecimal(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d, nil
}

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
