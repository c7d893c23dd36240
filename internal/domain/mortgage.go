package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MortgageType represents how a mortgage is paid back
type MortgageType string

const (
	MortgageTypeInterestOnly MortgageType = "interest_only"
	MortgageTypeRepayment    MortgageType = "repayment"
)

// MaxLoanTermYears caps the loan term accepted on write
const MaxLoanTermYears = 50

var hundred = decimal.NewFromInt(100)

// ParseMortgageType converts untrusted input into a MortgageType.
// This is the only place a free-form string becomes a MortgageType.
func ParseMortgageType(raw string) (MortgageType, error) {
	switch MortgageType(strings.ToLower(strings.TrimSpace(raw))) {
	case MortgageTypeInterestOnly:
		return MortgageTypeInterestOnly, nil
	case MortgageTypeRepayment:
		return MortgageTypeRepayment, nil
	default:
		return "", &UnsupportedTypeError{Value: raw}
	}
}

// Valid reports whether t is one of the known mortgage types
func (t MortgageType) Valid() bool {
	return t == MortgageTypeInterestOnly || t == MortgageTypeRepayment
}

// Mortgage represents a mortgage entity in the domain layer.
// Amount is the stored principal; it is derived from the property's purchase price
// and the loan-to-value ratio when the mortgage is written.
type Mortgage struct {
	ID           uuid.UUID
	PropertyID   uuid.UUID
	LoanToValue  decimal.Decimal // percent, 0-100
	InterestRate decimal.Decimal // annual percent
	Type         MortgageType
	LoanTerm     *int // years; required for repayment mortgages
	Amount       decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Validate ensures the mortgage adheres to domain rules
func (m *Mortgage) Validate() error {
	if m.PropertyID == uuid.Nil {
		return invalid("property_id", "is required")
	}

	if m.LoanToValue.IsNegative() || m.LoanToValue.GreaterThan(hundred) {
		return invalid("loan_to_value", "must be between 0 and 100")
	}
	if err := percentColumn.check("loan_to_value", m.LoanToValue); err != nil {
		return err
	}

	if m.InterestRate.IsNegative() {
		return invalid("interest_rate", "must not be negative")
	}
	if err := percentColumn.check("interest_rate", m.InterestRate); err != nil {
		return err
	}

	if !m.Type.Valid() {
		return &UnsupportedTypeError{Value: string(m.Type)}
	}

	if m.LoanTerm != nil {
		if *m.LoanTerm <= 0 {
			return invalid("loan_term", "must be positive")
		}
		if *m.LoanTerm > MaxLoanTermYears {
			return invalid("loan_term", "must be at most 50 years")
		}
	}

	// Repayment mortgages amortize over LoanTerm, so the term is mandatory
	if m.Type == MortgageTypeRepayment && m.LoanTerm == nil {
		return invalid("loan_term", "is required for repayment mortgages")
	}

	if m.Amount.IsNegative() {
		return invalid("mortgage_amount", "must not be negative")
	}
	if err := mortgageAmountColumn.check("mortgage_amount", m.Amount); err != nil {
		return err
	}

	return nil
}

// DeriveMortgageAmount returns purchasePrice * loanToValue / 100 rounded to cents
func DeriveMortgageAmount(purchasePrice, loanToValue decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(loanToValue).Div(hundred).Round(2)
}
