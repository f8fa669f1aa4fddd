package handlers

import (
	"net/http"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api/models"
	"solar-sizer/internal/vendor"

	"github.com/gin-gonic/gin"
)

// VendorHandler handles vendor catalog requests
type VendorHandler struct {
	advisor *advisor.Advisor
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(a *advisor.Advisor) *VendorHandler {
	return &VendorHandler{advisor: a}
}

// MatchVendors handles POST /api/v1/vendors/match
func (h *VendorHandler) MatchVendors(c *gin.Context) {
	var req models.VendorMatchRequest
	if !bindJSON(c, &req) {
		return
	}
	if vendor.NormalizeLocation(req.Location) == "" {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, "location must not be blank", nil))
		return
	}

	res := h.advisor.MatchVendors(req.RequiredKW, req.Location)
	switch res.Status {
	case vendor.StatusMatched:
		c.JSON(http.StatusOK, res)
	case vendor.StatusRegionUnavailable:
		c.JSON(http.StatusNotFound, models.NewError(models.CodeRegionUnavailable, res.Message, map[string]interface{}{
			"available_locations": res.AvailableLocations,
		}))
	default:
		c.JSON(http.StatusNotFound, models.NewError(models.CodeCapacityUnmatched, res.Message, map[string]interface{}{
			"required_kw":         req.RequiredKW,
			"available_locations": res.AvailableLocations,
		}))
	}
}

// ListVendors handles GET /api/v1/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"vendors": h.advisor.Vendors(),
		"summary": h.advisor.CatalogSummary(),
	})
}

// ListLocations handles GET /api/v1/locations
func (h *VendorHandler) ListLocations(c *gin.Context) {
	locations := h.advisor.Locations()
	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
		"count":     len(locations),
	})
}
