package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

const mortgageColumns = `id, property_id, loan_to_value, interest_rate, mortgage_type,
		loan_term, mortgage_amount, created_at, updated_at`

// MortgageRepository implements domain.MortgageRepository on SQLite
type MortgageRepository struct {
	db *DB
}

// NewMortgageRepository creates a new mortgage repository
func NewMortgageRepository(db *DB) *MortgageRepository {
	return &MortgageRepository{db: db}
}

func (r *MortgageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mortgage, error) {
	query := `SELECT ` + mortgageColumns + ` FROM mortgages WHERE id = ?`

	mortgage, err := scanMortgage(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("mortgage")
		}
		return nil, fmt.Errorf("failed to get mortgage by ID: %w", err)
	}

	return mortgage, nil
}

func (r *MortgageRepository) Create(ctx context.Context, mortgage *domain.Mortgage) error {
	query := `INSERT INTO mortgages (` + mortgageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		mortgage.ID.String(),
		mortgage.PropertyID.String(),
		mortgage.LoanToValue.String(),
		mortgage.InterestRate.String(),
		string(mortgage.Type),
		nullableTerm(mortgage.LoanTerm),
		mortgage.Amount.String(),
		formatTime(mortgage.CreatedAt),
		formatNullableTime(mortgage.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create mortgage: %w", err)
	}

	return nil
}

func (r *MortgageRepository) Update(ctx context.Context, mortgage *domain.Mortgage) error {
	query := `
		UPDATE mortgages
		SET property_id = ?, loan_to_value = ?, interest_rate = ?, mortgage_type = ?,
			loan_term = ?, mortgage_amount = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		mortgage.PropertyID.String(),
		mortgage.LoanToValue.String(),
		mortgage.InterestRate.String(),
		string(mortgage.Type),
		nullableTerm(mortgage.LoanTerm),
		mortgage.Amount.String(),
		formatNullableTime(mortgage.UpdatedAt),
		mortgage.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update mortgage: %w", err)
	}

	return requireAffected(result, "mortgage")
}

func (r *MortgageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mortgages WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete mortgage: %w", err)
	}

	return requireAffected(result, "mortgage")
}

func (r *MortgageRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Mortgage, error) {
	where, args := mortgageFilter(params)
	query := `SELECT ` + mortgageColumns + ` FROM mortgages ` + where +
		` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, append(args, params.Limit, params.Offset)...)
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

func (r *MortgageRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	where, args := mortgageFilter(params)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mortgages `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mortgages: %w", err)
	}

	return count, nil
}

func (r *MortgageRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	return r.Count(ctx, domain.ListParams{PropertyID: &propertyID})
}

func mortgageFilter(params domain.ListParams) (string, []any) {
	if params.PropertyID == nil {
		return "", nil
	}
	return `WHERE property_id = ?`, []any{params.PropertyID.String()}
}

func scanMortgage(row rowScanner) (*domain.Mortgage, error) {
	var mortgage domain.Mortgage
	var id, propertyID, ltv, rate, mortgageType, amount, createdAt string
	var loanTerm sql.NullInt64
	var updatedAt sql.NullString

	err := row.Scan(
		&id,
		&propertyID,
		&ltv,
		&rate,
		&mortgageType,
		&loanTerm,
		&amount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if mortgage.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse id: %w", err)
	}
	if mortgage.PropertyID, err = uuid.Parse(propertyID); err != nil {
		return nil, fmt.Errorf("failed to parse property_id: %w", err)
	}
	mortgage.Type = domain.MortgageType(mortgageType)
	if mortgage.LoanToValue, err = parseDecimal("loan_to_value", ltv); err != nil {
		return nil, err
	}
	if mortgage.InterestRate, err = parseDecimal("interest_rate", rate); err != nil {
		return nil, err
	}
	if mortgage.Amount, err = parseDecimal("mortgage_amount", amount); err != nil {
		return nil, err
	}
	if loanTerm.Valid {
		term := int(loanTerm.Int64)
		mortgage.LoanTerm = &term
	}
	if mortgage.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if mortgage.UpdatedAt, err = parseNullableTime("updated_at", updatedAt); err != nil {
		return nil, err
	}

	return &mortgage, nil
}

func nullableTerm(term *int) sql.NullInt64 {
	if term == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*term), Valid: true}
}
