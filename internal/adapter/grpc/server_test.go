package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	mortgagecalcv1 "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc/mortgagecalcv1"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/events"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/mortgage"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/portfolio"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/property"
)

const testToken = "test-token"

type testEnv struct {
	conn       *grpclib.ClientConn
	client     mortgagecalcv1.MortgageServiceClient
	properties *property.PropertyService
	mortgages  *mortgage.MortgageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "grpc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zaptest.NewLogger(t)
	propertyRepo := sqlite.NewPropertyRepository(db)
	mortgageRepo := sqlite.NewMortgageRepository(db)

	env := &testEnv{
		properties: property.NewPropertyService(propertyRepo, mortgageRepo, events.Noop{}, logger),
		mortgages:  mortgage.NewMortgageService(mortgageRepo, propertyRepo, events.Noop{}, logger),
	}
	srv := NewServer(
		env.properties,
		env.mortgages,
		payment.NewResolver(mortgageRepo, propertyRepo, logger),
		portfolio.NewPortfolioService(propertyRepo, mortgageRepo, logger),
		logger,
	)
	grpcServer, _ := NewGRPCServer(srv, testToken, logger)

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	env.conn = conn
	env.client = mortgagecalcv1.NewMortgageServiceClient(conn)
	return env
}

func authed() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+testToken)
}

func (e *testEnv) seed(t *testing.T) (*domain.Property, *domain.Mortgage) {
	t.Helper()
	ctx := context.Background()
	p, err := e.properties.Create(ctx, property.CreatePropertyInput{
		Name:           "Harbour View",
		PurchasePrice:  decimal.NewFromInt(300000),
		RentalIncome:   decimal.NewFromInt(1500),
		ManagementFees: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	term := 30
	m, err := e.mortgages.Create(ctx, mortgage.CreateMortgageInput{
		PropertyID:   p.ID,
		LoanToValue:  decimal.NewFromInt(75),
		InterestRate: decimal.NewFromFloat(2.5),
		Type:         domain.MortgageTypeRepayment,
		LoanTerm:     &term,
	})
	require.NoError(t, err)
	return p, m
}

func TestServer_CalculatePayment(t *testing.T) {
	env := newTestEnv(t)
	_, m := env.seed(t)

	resp, err := env.client.CalculatePayment(authed(), &mortgagecalcv1.CalculatePaymentRequest{MortgageId: m.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, m.ID.String(), resp.MortgageId)
	assert.InDelta(t, 889.02, resp.MonthlyPayment, 0.005)
}

func TestServer_CalculatePayment_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.CalculatePayment(authed(), &mortgagecalcv1.CalculatePaymentRequest{MortgageId: "nope"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.CalculatePayment(authed(), &mortgagecalcv1.CalculatePaymentRequest{MortgageId: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "mortgage not found")
}

func TestServer_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetMortgage(context.Background(), &mortgagecalcv1.GetMortgageRequest{Id: uuid.NewString()})

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_GetPropertyAndMortgage(t *testing.T) {
	env := newTestEnv(t)
	p, m := env.seed(t)

	gotProperty, err := env.client.GetProperty(authed(), &mortgagecalcv1.GetPropertyRequest{Id: p.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", gotProperty.PropertyName)
	assert.Equal(t, "300000", gotProperty.PurchasePrice)
	assert.Nil(t, gotProperty.UpdatedAt)

	gotMortgage, err := env.client.GetMortgage(authed(), &mortgagecalcv1.GetMortgageRequest{Id: m.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), gotMortgage.PropertyId)
	assert.Equal(t, "225000", gotMortgage.MortgageAmount)
	assert.Equal(t, "repayment", gotMortgage.MortgageType)
	assert.Equal(t, int32(30), gotMortgage.LoanTerm)
	assert.Equal(t, m.CreatedAt.Unix(), gotMortgage.CreatedAt.AsTime().Unix())
}

func TestServer_ListMortgagesAndSummary(t *testing.T) {
	env := newTestEnv(t)
	p, _ := env.seed(t)

	list, err := env.client.ListMortgages(authed(), &mortgagecalcv1.ListMortgagesRequest{PropertyId: p.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int32(1), list.Total)
	assert.Len(t, list.Mortgages, 1)

	_, err = env.client.ListMortgages(authed(), &mortgagecalcv1.ListMortgagesRequest{PropertyId: "bad"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	summary, err := env.client.GetPortfolioSummary(authed(), &mortgagecalcv1.GetPortfolioSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), summary.PropertyCount)
	assert.Equal(t, "225000.00", summary.TotalDebt)
	assert.Equal(t, "75000.00", summary.Equity)
	assert.Equal(t, "889.02", summary.MonthlyDebtService)
}

func TestServer_HealthCheckIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp, err := healthpb.NewHealthClient(env.conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: mortgagecalcv1.ServiceName})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
