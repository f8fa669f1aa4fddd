package handlers

import (
	"net/http"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api/models"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
	"solar-sizer/internal/vendor"

	"github.com/gin-gonic/gin"
)

// SizingHandler handles validation, sizing and cost comparison requests
type SizingHandler struct {
	markets *MarketHandler
}

// NewSizingHandler creates a new sizing handler
func NewSizingHandler(markets *MarketHandler) *SizingHandler {
	return &SizingHandler{markets: markets}
}

// Validate handles POST /api/v1/validate. The verdict is always returned with
// 200; rejection is part of the verdict, not a transport error.
func (h *SizingHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if !bindJSON(c, &req) {
		return
	}
	a, ok := h.markets.resolve(c, req.Market)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"validation": a.ValidateInput(req.MonthlyBill)})
}

// Size handles POST /api/v1/sizing
func (h *SizingHandler) Size(c *gin.Context) {
	var req models.SizingRequest
	if !bindJSON(c, &req) {
		return
	}
	a, ok := h.markets.resolve(c, req.Market)
	if !ok {
		return
	}
	bill, verdict, ok := gateBill(c, a, req.MonthlyBill)
	if !ok {
		return
	}

	resp := models.SizingResponse{
		Market:     a.Market().Name,
		Validation: verdict,
		Sizing:     a.Size(bill),
	}
	if vendor.NormalizeLocation(req.Location) != "" {
		match := a.MatchVendors(resp.Sizing.SystemSize.ActualCapacityKW, req.Location)
		resp.Vendors = &match
	}
	c.JSON(http.StatusOK, resp)
}

// gateBill parses and validates a raw bill. Rejected bills get a 422 carrying
// the verdict.
func gateBill(c *gin.Context, a *advisor.Advisor, raw any) (float64, model.Verdict, bool) {
	verdict := a.ValidateInput(raw)
	if !verdict.Proceedable() {
		c.JSON(http.StatusUnprocessableEntity, models.NewError(models.CodeValidationRejected, verdict.Message, map[string]interface{}{
			"validation": verdict,
		}))
		return 0, verdict, false
	}
	bill, _ := sizing.ParseBill(raw)
	return bill, verdict, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error(), nil))
		return false
	}
	return true
}
