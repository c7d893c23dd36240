//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mortgagecalcv1 "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc/mortgagecalcv1"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

var (
	db         *postgres.DB
	grpcClient mortgagecalcv1.MortgageServiceClient
	grpcConn   *grpc.ClientConn
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	// 1. Connect to Database
	dbConnStr := getDBConnectionString()
	var err error
	if err = postgres.RunMigrations(dbConnStr); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
	db, err = postgres.NewDB(dbConnStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	// 2. Connect to gRPC Server
	grpcConn, err = grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}
	grpcClient = mortgagecalcv1.NewMortgageServiceClient(grpcConn)

	// Run tests
	code := m.Run()

	grpcConn.Close()
	db.Close()
	os.Exit(code)
}

// getAuthContext returns a context carrying the API token
func getAuthContext() context.Context {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", token)
}

// getDBConnectionString returns the database connection string from environment or defaults
func getDBConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "mortgagecalc"))
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	return envOr("GRPC_ADDRESS", "localhost:8080")
}

// getHTTPBaseURL returns the HTTP server base URL from environment or defaults
func getHTTPBaseURL() string {
	return envOr("HTTP_BASE_URL", "http://localhost:8000")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func doJSON(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, getHTTPBaseURL()+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// TestPostgresRepositories exercises the postgres adapter directly
func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()
	propertyRepo := postgres.NewPropertyRepository(db)
	mortgageRepo := postgres.NewMortgageRepository(db)

	property := &domain.Property{
		ID:             uuid.New(),
		Name:           "100% Pure_Test " + uuid.NewString()[:8],
		PurchasePrice:  decimal.RequireFromString("300000.00"),
		RentalIncome:   decimal.RequireFromString("2500.50"),
		RenovationCost: decimal.Zero,
		AdminCosts:     decimal.Zero,
		ManagementFees: decimal.RequireFromString("200"),
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, propertyRepo.Create(ctx, property))
	t.Cleanup(func() { _ = propertyRepo.Delete(context.Background(), property.ID) })

	got, err := propertyRepo.GetByID(ctx, property.ID)
	require.NoError(t, err)
	assert.True(t, got.RentalIncome.Equal(property.RentalIncome))

	// Wildcards in the search term match literally
	found, err := propertyRepo.List(ctx, domain.ListParams{Limit: 10, Search: "100% pure_"})
	require.NoError(t, err)
	assert.NotEmpty(t, found)
	found, err = propertyRepo.List(ctx, domain.ListParams{Limit: 10, Search: "100%%%"})
	require.NoError(t, err)
	assert.Empty(t, found)

	term := 25
	mortgage := &domain.Mortgage{
		ID:           uuid.New(),
		PropertyID:   property.ID,
		LoanToValue:  decimal.NewFromInt(80),
		InterestRate: decimal.RequireFromString("3.5"),
		Type:         domain.MortgageTypeRepayment,
		LoanTerm:     &term,
		Amount:       decimal.NewFromInt(240000),
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, mortgageRepo.Create(ctx, mortgage))

	count, err := mortgageRepo.CountByProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// ON DELETE RESTRICT keeps the property while it has mortgages
	assert.Error(t, propertyRepo.Delete(ctx, property.ID))

	require.NoError(t, mortgageRepo.Delete(ctx, mortgage.ID))
	_, err = mortgageRepo.GetByID(ctx, mortgage.ID)
	assert.True(t, domain.IsEntityNotFound(err, "mortgage"))
}

// TestEndToEndFlow creates records over HTTP and reads them back over gRPC
func TestEndToEndFlow(t *testing.T) {
	ctx := getAuthContext()

	// 1. Create a property
	code, body := doJSON(t, http.MethodPost, "/api/v1/property/", map[string]any{
		"property_name":   "E2E " + uuid.NewString()[:8],
		"purchase_price":  300000,
		"rental_income":   2500,
		"renovation_cost": 50000,
		"admin_costs":     3000,
		"management_fees": 200,
	})
	require.Equal(t, http.StatusCreated, code, body)
	propertyID := body["data"].(map[string]any)["id"].(string)

	// 2. Create a repayment mortgage against it
	code, body = doJSON(t, http.MethodPost, "/api/v1/mortgage/", map[string]any{
		"property_id":   propertyID,
		"loan_to_value": 75,
		"interest_rate": 2.5,
		"mortgage_type": "repayment",
		"loan_term":     30,
	})
	require.Equal(t, http.StatusCreated, code, body)
	mortgageID := body["data"].(map[string]any)["id"].(string)
	assert.Equal(t, float64(225000), body["data"].(map[string]any)["mortgage_amount"])

	// 3. Payment over HTTP
	code, body = doJSON(t, http.MethodPost, "/api/v1/mortgage/"+mortgageID+"/payment", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, mortgageID, body["mortgage_id"])
	assert.InDelta(t, 889.02, body["monthly_payment"], 0.005)

	// 4. Same payment over gRPC
	payment, err := grpcClient.CalculatePayment(ctx, &mortgagecalcv1.CalculatePaymentRequest{MortgageId: mortgageID})
	require.NoError(t, err)
	assert.Equal(t, body["monthly_payment"], payment.MonthlyPayment)

	stored, err := grpcClient.GetMortgage(ctx, &mortgagecalcv1.GetMortgageRequest{Id: mortgageID})
	require.NoError(t, err)
	assert.Equal(t, propertyID, stored.PropertyId)

	// 5. The property cannot be deleted while it has mortgages
	code, _ = doJSON(t, http.MethodDelete, "/api/v1/property/"+propertyID, nil)
	assert.Equal(t, http.StatusConflict, code)

	// 6. Clean up
	code, _ = doJSON(t, http.MethodDelete, "/api/v1/mortgage/"+mortgageID, nil)
	assert.Equal(t, http.StatusAccepted, code)
	code, _ = doJSON(t, http.MethodDelete, "/api/v1/property/"+propertyID, nil)
	assert.Equal(t, http.StatusAccepted, code)

	_, err = grpcClient.GetProperty(ctx, &mortgagecalcv1.GetPropertyRequest{Id: propertyID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// TestNegativeScenarios covers auth and argument errors on the gRPC surface
func TestNegativeScenarios(t *testing.T) {
	_, err := grpcClient.GetMortgage(context.Background(), &mortgagecalcv1.GetMortgageRequest{Id: uuid.NewString()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = grpcClient.CalculatePayment(getAuthContext(), &mortgagecalcv1.CalculatePaymentRequest{MortgageId: "not-a-uuid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = grpcClient.CalculatePayment(getAuthContext(), &mortgagecalcv1.CalculatePaymentRequest{MortgageId: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	code, body := doJSON(t, http.MethodPost, "/api/v1/mortgage/", map[string]any{
		"property_id":   uuid.NewString(),
		"loan_to_value": 80,
		"interest_rate": 3,
		"mortgage_type": "balloon",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, `unsupported mortgage type "balloon"`, body["detail"])
}
