package mortgagecalcv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Decimal amounts travel as strings so no precision is lost on the wire.

type Property struct {
	Id             string                 `json:"id"`
	PropertyName   string                 `json:"property_name"`
	PurchasePrice  string                 `json:"purchase_price"`
	RentalIncome   string                 `json:"rental_income"`
	RenovationCost string                 `json:"renovation_cost"`
	AdminCosts     string                 `json:"admin_costs"`
	ManagementFees string                 `json:"management_fees"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type Mortgage struct {
	Id             string                 `json:"id"`
	PropertyId     string                 `json:"property_id"`
	LoanToValue    string                 `json:"loan_to_value"`
	InterestRate   string                 `json:"interest_rate"`
	MortgageType   string                 `json:"mortgage_type"`
	LoanTerm       int32                  `json:"loan_term,omitempty"` // 0 when unset
	MortgageAmount string                 `json:"mortgage_amount"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type CalculatePaymentRequest struct {
	MortgageId string `json:"mortgage_id"`
}

type CalculatePaymentResponse struct {
	MortgageId     string  `json:"mortgage_id"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

type GetPropertyRequest struct {
	Id string `json:"id"`
}

type GetMortgageRequest struct {
	Id string `json:"id"`
}

type ListMortgagesRequest struct {
	PropertyId string `json:"property_id,omitempty"`
	Page       int32  `json:"page,omitempty"`
	Limit      int32  `json:"limit,omitempty"`
}

type ListMortgagesResponse struct {
	Mortgages []*Mortgage `json:"mortgages"`
	Total     int32       `json:"total"`
}

type GetPortfolioSummaryRequest struct{}

type PortfolioSummary struct {
	PropertyCount       int32  `json:"property_count"`
	MortgageCount       int32  `json:"mortgage_count"`
	TotalValue          string `json:"total_value"`
	TotalDebt           string `json:"total_debt"`
	Equity              string `json:"equity"`
	MonthlyRentalIncome string `json:"monthly_rental_income"`
	MonthlyDebtService  string `json:"monthly_debt_service"`
}
