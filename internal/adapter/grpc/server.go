// Package grpc exposes the payment and read-side operations over gRPC.
package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	mortgagecalcv1 "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc/mortgagecalcv1"
	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/mortgage"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/portfolio"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/property"
)

// Server implements the MortgageService gRPC server
type Server struct {
	mortgagecalcv1.UnimplementedMortgageServiceServer

	PropertyService  *property.PropertyService
	MortgageService  *mortgage.MortgageService
	PaymentResolver  *payment.Resolver
	PortfolioService *portfolio.PortfolioService
	logger           *zap.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(
	propertyService *property.PropertyService,
	mortgageService *mortgage.MortgageService,
	paymentResolver *payment.Resolver,
	portfolioService *portfolio.PortfolioService,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		PropertyService:  propertyService,
		MortgageService:  mortgageService,
		PaymentResolver:  paymentResolver,
		PortfolioService: portfolioService,
		logger:           logger.Named("grpc"),
	}
}

// CalculatePayment handles the CalculatePayment RPC
func (s *Server) CalculatePayment(ctx context.Context, req *mortgagecalcv1.CalculatePaymentRequest) (*mortgagecalcv1.CalculatePaymentResponse, error) {
	mortgageID, err := uuid.Parse(req.MortgageId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid mortgage_id format: %v", err)
	}

	result, err := s.PaymentResolver.ResolvePayment(ctx, mortgageID)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &mortgagecalcv1.CalculatePaymentResponse{
		MortgageId:     result.MortgageID.String(),
		MonthlyPayment: result.MonthlyPayment,
	}, nil
}

// GetProperty handles the GetProperty RPC
func (s *Server) GetProperty(ctx context.Context, req *mortgagecalcv1.GetPropertyRequest) (*mortgagecalcv1.Property, error) {
	id, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	p, err := s.PropertyService.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return domainPropertyToProto(p), nil
}

// GetMortgage handles the GetMortgage RPC
func (s *Server) GetMortgage(ctx context.Context, req *mortgagecalcv1.GetMortgageRequest) (*mortgagecalcv1.Mortgage, error) {
	id, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	m, err := s.MortgageService.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return domainMortgageToProto(m), nil
}

// ListMortgages handles the ListMortgages RPC.
// An empty property_id lists every mortgage.
func (s *Server) ListMortgages(ctx context.Context, req *mortgagecalcv1.ListMortgagesRequest) (*mortgagecalcv1.ListMortgagesResponse, error) {
	var propertyID *uuid.UUID
	if req.PropertyId != "" {
		id, err := uuid.Parse(req.PropertyId)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid property_id format: %v", err)
		}
		propertyID = &id
	}

	page := domain.Page{Page: int(req.Page), Limit: int(req.Limit)}
	mortgages, total, err := s.MortgageService.List(ctx, page, propertyID)
	if err != nil {
		return nil, s.mapError(err)
	}

	protoMortgages := make([]*mortgagecalcv1.Mortgage, 0, len(mortgages))
	for _, m := range mortgages {
		protoMortgages = append(protoMortgages, domainMortgageToProto(m))
	}

	return &mortgagecalcv1.ListMortgagesResponse{
		Mortgages: protoMortgages,
		Total:     int32(total),
	}, nil
}

// GetPortfolioSummary handles the GetPortfolioSummary RPC
func (s *Server) GetPortfolioSummary(ctx context.Context, _ *mortgagecalcv1.GetPortfolioSummaryRequest) (*mortgagecalcv1.PortfolioSummary, error) {
	summary, err := s.PortfolioService.GetSummary(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &mortgagecalcv1.PortfolioSummary{
		PropertyCount:       int32(summary.PropertyCount),
		MortgageCount:       int32(summary.MortgageCount),
		TotalValue:          summary.TotalValue.StringFixed(2),
		TotalDebt:           summary.TotalDebt.StringFixed(2),
		Equity:              summary.Equity.StringFixed(2),
		MonthlyRentalIncome: summary.MonthlyRentalIncome.StringFixed(2),
		MonthlyDebtService:  summary.MonthlyDebtService.StringFixed(2),
	}, nil
}

// Helper functions for conversion

func domainPropertyToProto(p *domain.Property) *mortgagecalcv1.Property {
	return &mortgagecalcv1.Property{
		Id:             p.ID.String(),
		PropertyName:   p.Name,
		PurchasePrice:  decimalString(p.PurchasePrice),
		RentalIncome:   decimalString(p.RentalIncome),
		RenovationCost: decimalString(p.RenovationCost),
		AdminCosts:     decimalString(p.AdminCosts),
		ManagementFees: decimalString(p.ManagementFees),
		CreatedAt:      timestamppb.New(p.CreatedAt),
		UpdatedAt:      optionalTimestamp(p.UpdatedAt),
	}
}

func domainMortgageToProto(m *domain.Mortgage) *mortgagecalcv1.Mortgage {
	out := &mortgagecalcv1.Mortgage{
		Id:             m.ID.String(),
		PropertyId:     m.PropertyID.String(),
		LoanToValue:    decimalString(m.LoanToValue),
		InterestRate:   decimalString(m.InterestRate),
		MortgageType:   string(m.Type),
		MortgageAmount: decimalString(m.Amount),
		CreatedAt:      timestamppb.New(m.CreatedAt),
		UpdatedAt:      optionalTimestamp(m.UpdatedAt),
	}
	if m.LoanTerm != nil {
		out.LoanTerm = int32(*m.LoanTerm)
	}
	return out
}

func decimalString(d decimal.Decimal) string {
	return d.String()
}

func optionalTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

// mapError converts domain errors to gRPC status errors
func (s *Server) mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedType):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.Error("rpc failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
