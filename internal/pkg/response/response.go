package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/validator"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the envelope for a service error. Unclassified errors
// are attached to the gin context for the error logger and reported as 500.
func FromError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	if kind == apperr.KindInternal {
		_ = c.Error(err)
		Error(c, status, string(kind), "Internal server error")
		return
	}

	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		ErrorWithDetails(c, status, string(kind), err.Error(), fields)
		return
	}
	Error(c, status, string(kind), err.Error())
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// BindError reports a request that failed to bind or validate.
func BindError(c *gin.Context, err error) {
	if fields := validator.Fields(err); len(fields) > 0 {
		ErrorWithDetails(c, http.StatusBadRequest, string(apperr.KindValidation), "Invalid request body", fields)
		return
	}
	Error(c, http.StatusBadRequest, string(apperr.KindValidation), "Invalid request body")
}
