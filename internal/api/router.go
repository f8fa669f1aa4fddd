package api

import (
	"net/http"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api/handlers"
	"solar-sizer/internal/api/middleware"
	"solar-sizer/internal/api/models"
	"solar-sizer/internal/model"

	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Advisor        *advisor.Advisor
	MarketsDir     string
	CaseStudies    []model.CaseStudy
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and all /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	marketHandler := handlers.NewMarketHandler(d.Advisor, d.MarketsDir)
	sizingHandler := handlers.NewSizingHandler(marketHandler)
	vendorHandler := handlers.NewVendorHandler(d.Advisor)
	quoteHandler := handlers.NewQuoteHandler(marketHandler)
	caseStudyHandler := handlers.NewCaseStudyHandler(d.CaseStudies)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)

	api := router.Group("/api/v1")
	{
		api.GET("/health", health)

		api.POST("/validate", sizingHandler.Validate)
		api.POST("/sizing", sizingHandler.Size)
		api.POST("/cost-comparison", sizingHandler.CompareCosts)

		api.POST("/vendors/match", vendorHandler.MatchVendors)
		api.GET("/vendors", vendorHandler.ListVendors)
		api.GET("/locations", vendorHandler.ListLocations)

		api.POST("/quotes", quoteHandler.CreateQuote)
		api.GET("/quotes", quoteHandler.ListQuotes)

		api.GET("/markets", marketHandler.ListMarkets)
		api.GET("/case-studies", caseStudyHandler.ListCaseStudies)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "Not found", nil))
	})
	return router
}
