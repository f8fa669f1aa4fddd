package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/projection"

	"github.com/gin-gonic/gin"
)

// MaxComparisonYears caps the projection horizon accepted over HTTP.
const MaxComparisonYears = 50

// CompareCosts handles POST /api/v1/cost-comparison.
// With ?format=csv the series is returned as a CSV attachment.
func (h *SizingHandler) CompareCosts(c *gin.Context) {
	var req models.CostComparisonRequest
	if !bindJSON(c, &req) {
		return
	}
	years := req.Years
	if years == 0 {
		years = projection.DefaultYears
	}
	if years < 0 || years > MaxComparisonYears {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest,
			fmt.Sprintf("years must be between 1 and %d", MaxComparisonYears), nil))
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

	points := a.ProjectCosts(bill, years)

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="cost_comparison.csv"`)
		c.Status(http.StatusOK)
		if err := projection.WriteComparisonCSV(c.Writer, points); err != nil {
			slog.Error("failed to write comparison csv", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, models.CostComparisonResponse{
		Market:          a.Market().Name,
		Validation:      verdict,
		MonthlyFuelCost: a.MonthlyFuelCost(),
		Points:          points,
		Summary:         projection.Summarize(points),
	})
}
