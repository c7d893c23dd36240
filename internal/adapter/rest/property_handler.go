package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/mortgagecalc-backend/internal/usecase/property"
)

// CreateProperty handles POST /api/v1/property/
func (h *Handler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.PropertyService.Create(c.Request.Context(), property.CreatePropertyInput{
		Name:           req.Name,
		PurchasePrice:  req.PurchasePrice,
		RentalIncome:   req.RentalIncome,
		RenovationCost: req.RenovationCost,
		AdminCosts:     req.AdminCosts,
		ManagementFees: req.ManagementFees,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "Property created", toPropertyResponse(created))
}

// ListProperties handles GET /api/v1/property/?page=&limit=&search=
func (h *Handler) ListProperties(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	properties, total, err := h.PropertyService.List(c.Request.Context(), page, c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}

	data := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		data = append(data, toPropertyResponse(p))
	}
	respondPage(c, "Properties retrieved", data, page, total)
}

// GetProperty handles GET /api/v1/property/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := pathID(c, "property")
	if !ok {
		return
	}

	found, err := h.PropertyService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Property retrieved", toPropertyResponse(found))
}

// PatchProperty handles PATCH /api/v1/property/:id
func (h *Handler) PatchProperty(c *gin.Context) {
	id, ok := pathID(c, "property")
	if !ok {
		return
	}

	var req propertyPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.PropertyService.Update(c.Request.Context(), id, property.UpdatePropertyInput{
		Name:           req.Name,
		PurchasePrice:  req.PurchasePrice,
		RentalIncome:   req.RentalIncome,
		RenovationCost: req.RenovationCost,
		AdminCosts:     req.AdminCosts,
		ManagementFees: req.ManagementFees,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusAccepted, "Property updated", toPropertyResponse(updated))
}

// ReplaceProperty handles PUT /api/v1/property/:id; omitted amounts become zero
func (h *Handler) ReplaceProperty(c *gin.Context) {
	id, ok := pathID(c, "property")
	if !ok {
		return
	}

	var req propertyRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.PropertyService.Update(c.Request.Context(), id, property.UpdatePropertyInput{
		Name:           &req.Name,
		PurchasePrice:  &req.PurchasePrice,
		RentalIncome:   &req.RentalIncome,
		RenovationCost: &req.RenovationCost,
		AdminCosts:     &req.AdminCosts,
		ManagementFees: &req.ManagementFees,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusAccepted, "Property updated", toPropertyResponse(updated))
}

// DeleteProperty handles DELETE /api/v1/property/:id
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c, "property")
	if !ok {
		return
	}

	if err := h.PropertyService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusAccepted, "Property deleted", nil)
}

// GetPropertyDetail handles GET /api/v1/property/:id/detail
func (h *Handler) GetPropertyDetail(c *gin.Context) {
	id, ok := pathID(c, "property")
	if !ok {
		return
	}

	detail, err := h.PortfolioService.GetPropertyDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Property detail retrieved", toPropertyDetailResponse(detail))
}

// GetPortfolioSummary handles GET /api/v1/portfolio/summary
func (h *Handler) GetPortfolioSummary(c *gin.Context) {
	summary, err := h.PortfolioService.GetSummary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Portfolio summary retrieved", toPortfolioSummaryResponse(summary))
}
