package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"solar-sizer/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles panics and errors
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("panic while handling request",
			"method", c.Request.Method, "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, message, nil))
	})
}
