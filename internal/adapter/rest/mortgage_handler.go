package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/mortgage"
)

// CreateMortgage handles POST /api/v1/mortgage/
func (h *Handler) CreateMortgage(c *gin.Context) {
	var req mortgageRequest
	if !bindJSON(c, &req) {
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid property id")
		return
	}
	mortgageType, err := domain.ParseMortgageType(req.MortgageType)
	if err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.MortgageService.Create(c.Request.Context(), mortgage.CreateMortgageInput{
		PropertyID:   propertyID,
		LoanToValue:  req.LoanToValue,
		InterestRate: req.InterestRate,
		Type:         mortgageType,
		LoanTerm:     req.LoanTerm,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "Mortgage created", toMortgageResponse(created))
}

// ListMortgages handles GET /api/v1/mortgage/?page=&limit=&property_id=
func (h *Handler) ListMortgages(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	var propertyID *uuid.UUID
	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			abortWithDetail(c, http.StatusBadRequest, "invalid property id")
			return
		}
		propertyID = &id
	}

	mortgages, total, err := h.MortgageService.List(c.Request.Context(), page, propertyID)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := make([]mortgageResponse, 0, len(mortgages))
	for _, m := range mortgages {
		data = append(data, toMortgageResponse(m))
	}
	respondPage(c, "Mortgages retrieved", data, page, total)
}

// GetMortgage handles GET /api/v1/mortgage/:id
func (h *Handler) GetMortgage(c *gin.Context) {
	id, ok := pathID(c, "mortgage")
	if !ok {
		return
	}

	found, err := h.MortgageService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Mortgage retrieved", toMortgageResponse(found))
}

// PatchMortgage handles PATCH /api/v1/mortgage/:id
func (h *Handler) PatchMortgage(c *gin.Context) {
	id, ok := pathID(c, "mortgage")
	if !ok {
		return
	}

	var req mortgagePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	input := mortgage.UpdateMortgageInput{
		LoanToValue:  req.LoanToValue,
		InterestRate: req.InterestRate,
		LoanTerm:     req.LoanTerm,
	}
	if req.PropertyID != nil {
		propertyID, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			abortWithDetail(c, http.StatusBadRequest, "invalid property id")
			return
		}
		input.PropertyID = &propertyID
	}
	if req.MortgageType != nil {
		mortgageType, err := domain.ParseMortgageType(*req.MortgageType)
		if err != nil {
			h.fail(c, err)
			return
		}
		input.Type = &mortgageType
	}

	updated, err := h.MortgageService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusAccepted, "Mortgage updated", toMortgageResponse(updated))
}

// DeleteMortgage handles DELETE /api/v1/mortgage/:id
func (h *Handler) DeleteMortgage(c *gin.Context) {
	id, ok := pathID(c, "mortgage")
	if !ok {
		return
	}

	if err := h.MortgageService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusAccepted, "Mortgage deleted", nil)
}

// CalculatePayment handles POST /api/v1/mortgage/:id/payment
func (h *Handler) CalculatePayment(c *gin.Context) {
	id, ok := pathID(c, "mortgage")
	if !ok {
		return
	}

	result, err := h.PaymentResolver.ResolvePayment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	// The payment is returned bare, without the success envelope
	c.JSON(http.StatusOK, paymentResponse{
		MortgageID:     result.MortgageID,
		MonthlyPayment: result.MonthlyPayment,
	})
}
