package handlers

import (
	"net/http"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/data"
	"solar-sizer/internal/model"

	"github.com/gin-gonic/gin"
)

// CaseStudyHandler serves customer stories
type CaseStudyHandler struct {
	studies []model.CaseStudy
}

// NewCaseStudyHandler creates a new case study handler
func NewCaseStudyHandler(studies []model.CaseStudy) *CaseStudyHandler {
	return &CaseStudyHandler{studies: studies}
}

// ListCaseStudies handles GET /api/v1/case-studies.
// With kw or location, stories are ordered by similarity.
func (h *CaseStudyHandler) ListCaseStudies(c *gin.Context) {
	var q models.CaseStudyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error(), nil))
		return
	}
	limit := q.Limit
	if limit <= 0 {
		limit = len(h.studies)
	}

	studies := h.studies
	if q.KW > 0 || q.Location != "" {
		studies = data.SimilarCaseStudies(h.studies, q.KW, q.Location, limit)
	} else if len(studies) > limit {
		studies = studies[:limit]
	}
	if studies == nil {
		studies = []model.CaseStudy{}
	}
	c.JSON(http.StatusOK, gin.H{"case_studies": studies})
}
