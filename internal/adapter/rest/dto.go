package rest

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/portfolio"
)

// Requests. Money and percentages accept JSON numbers or numeric strings.

type propertyRequest struct {
	Name           string          `json:"property_name"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	RentalIncome   decimal.Decimal `json:"rental_income"`
	RenovationCost decimal.Decimal `json:"renovation_cost"`
	AdminCosts     decimal.Decimal `json:"admin_costs"`
	ManagementFees decimal.Decimal `json:"management_fees"`
}

type propertyPatchRequest struct {
	Name           *string          `json:"property_name"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	RentalIncome   *decimal.Decimal `json:"rental_income"`
	RenovationCost *decimal.Decimal `json:"renovation_cost"`
	AdminCosts     *decimal.Decimal `json:"admin_costs"`
	ManagementFees *decimal.Decimal `json:"management_fees"`
}

type mortgageRequest struct {
	PropertyID   string          `json:"property_id"`
	LoanToValue  decimal.Decimal `json:"loan_to_value"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	MortgageType string          `json:"mortgage_type"`
	LoanTerm     *int            `json:"loan_term"`
}

type mortgagePatchRequest struct {
	PropertyID   *string          `json:"property_id"`
	LoanToValue  *decimal.Decimal `json:"loan_to_value"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	MortgageType *string          `json:"mortgage_type"`
	LoanTerm     *int             `json:"loan_term"`
}

// Responses. Decimals are written as JSON numbers without losing digits.

type propertyResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"property_name"`
	PurchasePrice  json.Number `json:"purchase_price"`
	RentalIncome   json.Number `json:"rental_income"`
	RenovationCost json.Number `json:"renovation_cost"`
	AdminCosts     json.Number `json:"admin_costs"`
	ManagementFees json.Number `json:"management_fees"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at"`
}

type mortgageResponse struct {
	ID             uuid.UUID   `json:"id"`
	PropertyID     uuid.UUID   `json:"property_id"`
	LoanToValue    json.Number `json:"loan_to_value"`
	InterestRate   json.Number `json:"interest_rate"`
	MortgageType   string      `json:"mortgage_type"`
	LoanTerm       *int        `json:"loan_term"`
	MortgageAmount json.Number `json:"mortgage_amount"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at"`
}

type paymentResponse struct {
	MortgageID     uuid.UUID `json:"mortgage_id"`
	MonthlyPayment float64   `json:"monthly_payment"`
}

type mortgagePaymentResponse struct {
	mortgageResponse
	MonthlyPayment json.Number `json:"monthly_payment"`
}

type propertyDetailResponse struct {
	Property            propertyResponse          `json:"property"`
	Mortgages           []mortgagePaymentResponse `json:"mortgages"`
	TotalDebt           json.Number               `json:"total_debt"`
	TotalMonthlyPayment json.Number               `json:"total_monthly_payment"`
	MonthlyCashflow     json.Number               `json:"monthly_cashflow"`
	SkippedMortgages    []uuid.UUID               `json:"skipped_mortgages"`
}

type portfolioSummaryResponse struct {
	PropertyCount       int         `json:"property_count"`
	MortgageCount       int         `json:"mortgage_count"`
	TotalValue          json.Number `json:"total_value"`
	TotalDebt           json.Number `json:"total_debt"`
	Equity              json.Number `json:"equity"`
	MonthlyRentalIncome json.Number `json:"monthly_rental_income"`
	MonthlyDebtService  json.Number `json:"monthly_debt_service"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		PurchasePrice:  number(p.PurchasePrice),
		RentalIncome:   number(p.RentalIncome),
		RenovationCost: number(p.RenovationCost),
		AdminCosts:     number(p.AdminCosts),
		ManagementFees: number(p.ManagementFees),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toMortgageResponse(m *domain.Mortgage) mortgageResponse {
	return mortgageResponse{
		ID:             m.ID,
		PropertyID:     m.PropertyID,
		LoanToValue:    number(m.LoanToValue),
		InterestRate:   number(m.InterestRate),
		MortgageType:   string(m.Type),
		LoanTerm:       m.LoanTerm,
		MortgageAmount: number(m.Amount),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toPropertyDetailResponse(d *portfolio.PropertyDetail) propertyDetailResponse {
	mortgages := make([]mortgagePaymentResponse, 0, len(d.Mortgages))
	for _, mp := range d.Mortgages {
		mortgages = append(mortgages, mortgagePaymentResponse{
			mortgageResponse: toMortgageResponse(mp.Mortgage),
			MonthlyPayment:   number(mp.MonthlyPayment),
		})
	}
	return propertyDetailResponse{
		Property:            toPropertyResponse(d.Property),
		Mortgages:           mortgages,
		TotalDebt:           number(d.TotalDebt),
		TotalMonthlyPayment: number(d.TotalMonthlyPayment),
		MonthlyCashflow:     number(d.MonthlyCashflow),
		SkippedMortgages:    d.Skipped,
	}
}

func toPortfolioSummaryResponse(s *portfolio.Summary) portfolioSummaryResponse {
	return portfolioSummaryResponse{
		PropertyCount:       s.PropertyCount,
		MortgageCount:       s.MortgageCount,
		TotalValue:          number(s.TotalValue),
		TotalDebt:           number(s.TotalDebt),
		Equity:              number(s.Equity),
		MonthlyRentalIncome: number(s.MonthlyRentalIncome),
		MonthlyDebtService:  number(s.MonthlyDebtService),
	}
}
