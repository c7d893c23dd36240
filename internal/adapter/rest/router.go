// Package rest exposes the property and mortgage services over HTTP.
package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/adapter/ratelimit"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/mortgage"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/portfolio"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/property"
)

// Handler serves the /api/v1 routes
type Handler struct {
	PropertyService  *property.PropertyService
	MortgageService  *mortgage.MortgageService
	PaymentResolver  *payment.Resolver
	PortfolioService *portfolio.PortfolioService
	logger           *zap.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(
	propertyService *property.PropertyService,
	mortgageService *mortgage.MortgageService,
	paymentResolver *payment.Resolver,
	portfolioService *portfolio.PortfolioService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		PropertyService:  propertyService,
		MortgageService:  mortgageService,
		PaymentResolver:  paymentResolver,
		PortfolioService: portfolioService,
		logger:           logger.Named("http"),
	}
}

// RouterOptions configures the cross-cutting middleware
type RouterOptions struct {
	CORSOrigins []string
	// Limiter is optional; nil disables rate limiting
	Limiter ratelimit.Limiter
}

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(Recovery(h.logger))
	r.Use(RequestLogger(h.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/healthchecker", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "The API is LIVE!!"})
	})

	v1 := r.Group("/api/v1")
	if opts.Limiter != nil {
		v1.Use(RateLimit(opts.Limiter, h.logger))
	}

	properties := v1.Group("/property")
	{
		properties.POST("/", h.CreateProperty)
		properties.GET("/", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.PATCH("/:id", h.PatchProperty)
		properties.PUT("/:id", h.ReplaceProperty)
		properties.DELETE("/:id", h.DeleteProperty)
		properties.GET("/:id/detail", h.GetPropertyDetail)
	}

	mortgages := v1.Group("/mortgage")
	{
		mortgages.POST("/", h.CreateMortgage)
		mortgages.GET("/", h.ListMortgages)
		mortgages.GET("/:id", h.GetMortgage)
		mortgages.PATCH("/:id", h.PatchMortgage)
		mortgages.DELETE("/:id", h.DeleteMortgage)
		mortgages.POST("/:id/payment", h.CalculatePayment)
	}

	v1.GET("/portfolio/summary", h.GetPortfolioSummary)

	r.NoRoute(func(c *gin.Context) {
		abortWithDetail(c, http.StatusNotFound, "Not Found")
	})

	return r
}
