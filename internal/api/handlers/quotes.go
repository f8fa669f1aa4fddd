package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api/models"
	"solar-sizer/internal/quote"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quote requests
type QuoteHandler struct {
	markets *MarketHandler
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(markets *MarketHandler) *QuoteHandler {
	return &QuoteHandler{markets: markets}
}

// CreateQuote handles POST /api/v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req models.QuoteCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	a, ok := h.markets.resolve(c, req.Market)
	if !ok {
		return
	}

	result := req.Sizing
	if result == nil && req.MonthlyBill != nil {
		bill, _, ok := gateBill(c, a, *req.MonthlyBill)
		if !ok {
			return
		}
		sized := a.Size(bill)
		result = &sized
	}

	receipt, err := a.RecordQuote(c.Request.Context(), req.UserData, req.VendorID, result)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// ListQuotes handles GET /api/v1/quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	a, ok := h.markets.resolve(c, "")
	if !ok {
		return
	}
	quotes, err := a.Quotes(c.Request.Context())
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quote.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error(), nil))
	case errors.Is(err, quote.ErrVendorNotFound):
		c.JSON(http.StatusNotFound, models.NewError(models.CodeVendorNotFound, err.Error(), nil))
	case errors.Is(err, advisor.ErrQuotesDisabled):
		c.JSON(http.StatusServiceUnavailable, models.NewError(models.CodeQuotesDisabled, err.Error(), nil))
	default:
		slog.Error("quote store failure", "error", err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, "Failed to store quote request", nil))
	}
}
