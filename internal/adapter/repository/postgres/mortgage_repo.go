package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

const mortgageColumns = `id, property_id, loan_to_value, interest_rate, mortgage_type,
		loan_term, mortgage_amount, created_at, updated_at`

// mortgageRepository implements domain.MortgageRepository
type mortgageRepository struct {
	db *DB
}

// NewMortgageRepository creates a new mortgage repository
func NewMortgageRepository(db *DB) domain.MortgageRepository {
	return &mortgageRepository{db: db}
}

// GetByID retrieves a mortgage by its ID.
// The stored type is returned as-is; callers decide how to treat unknown values.
func (r *mortgageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mortgage, error) {
	query := `SELECT ` + mortgageColumns + ` FROM mortgages WHERE id = $1`

	mortgage, err := scanMortgage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("mortgage")
		}
		return nil, fmt.Errorf("failed to get mortgage by ID: %w", err)
	}

	return mortgage, nil
}

// Create creates a new mortgage
func (r *mortgageRepository) Create(ctx context.Context, mortgage *domain.Mortgage) error {
	query := `
		INSERT INTO mortgages (` + mortgageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		mortgage.ID,
		mortgage.PropertyID,
		mortgage.LoanToValue.String(),
		mortgage.InterestRate.String(),
		string(mortgage.Type),
		nullableTerm(mortgage.LoanTerm),
		mortgage.Amount.String(),
		mortgage.CreatedAt,
		mortgage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create mortgage: %w", err)
	}

	return nil
}

// Update overwrites the mutable columns of a mortgage
func (r *mortgageRepository) Update(ctx context.Context, mortgage *domain.Mortgage) error {
	query := `
		UPDATE mortgages
		SET property_id = $2, loan_to_value = $3, interest_rate = $4, mortgage_type = $5,
			loan_term = $6, mortgage_amount = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		mortgage.ID,
		mortgage.PropertyID,
		mortgage.LoanToValue.String(),
		mortgage.InterestRate.String(),
		string(mortgage.Type),
		nullableTerm(mortgage.LoanTerm),
		mortgage.Amount.String(),
		mortgage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update mortgage: %w", err)
	}

	return requireAffected(result, "mortgage")
}

// Delete removes a mortgage by its ID
func (r *mortgageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mortgages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mortgage: %w", err)
	}

	return requireAffected(result, "mortgage")
}

// List retrieves a page of mortgages, newest first
func (r *mortgageRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Mortgage, error) {
	where, args := mortgageFilter(params)
	args = append(args, params.Limit, params.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM mortgages
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, mortgageColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mortgages: %w", err)
	}
	defer rows.Close()

	mortgages := make([]*domain.Mortgage, 0)
	for rows.Next() {
		mortgage, err := scanMortgage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mortgage: %w", err)
		}
		mortgages = append(mortgages, mortgage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mortgages: %w", err)
	}

	return mortgages, nil
}

// Count returns the number of mortgages matching params
func (r *mortgageRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	where, args := mortgageFilter(params)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mortgages `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mortgages: %w", err)
	}

	return count, nil
}

// CountByProperty returns how many mortgages reference the property
func (r *mortgageRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	return r.Count(ctx, domain.ListParams{PropertyID: &propertyID})
}

func mortgageFilter(params domain.ListParams) (string, []any) {
	if params.PropertyID == nil {
		return "", nil
	}
	return `WHERE property_id = $1`, []any{*params.PropertyID}
}

func scanMortgage(row rowScanner) (*domain.Mortgage, error) {
	var mortgage domain.Mortgage
	var ltv, rate, amount, mortgageType string
	var loanTerm sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&mortgage.ID,
		&mortgage.PropertyID,
		&ltv,
		&rate,
		&mortgageType,
		&loanTerm,
		&amount,
		&mortgage.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	mortgage.Type = domain.MortgageType(mortgageType)

	// Parse NUMERIC columns
	if mortgage.LoanToValue, err = decimal.NewFromString(ltv); err != nil {
		return nil, fmt.Errorf("failed to parse loan_to_value: %w", err)
	}
	if mortgage.InterestRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("failed to parse interest_rate: %w", err)
	}
	if mortgage.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse mortgage_amount: %w", err)
	}

	if loanTerm.Valid {
		term := int(loanTerm.Int64)
		mortgage.LoanTerm = &term
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		mortgage.UpdatedAt = &t
	}

	return &mortgage, nil
}

func nullableTerm(term *int) sql.NullInt64 {
	if term == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*term), Valid: true}
}
