package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/errs"
	"skilllink/internal/pkg/validator"
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

// FromError writes the envelope for a domain error using its kind.
func FromError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := StatusFor(kind)
	if kind == errs.KindRemote {
		_ = c.Error(err)
		log.Printf("remote_error method=%s path=%s error=%q", c.Request.Method, c.Request.URL.Path, err.Error())
		Error(c, status, string(kind), "Data store request failed")
		return
	}
	Error(c, status, string(kind), err.Error())
}

func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindAuthorization:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// BindJSON decodes and validates the body into dst. On failure it writes the
// error envelope and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	if fields := validator.Validate(dst); fields != nil {
		ErrorWithDetails(c, http.StatusBadRequest, string(errs.KindValidation), validator.Describe(fields), fields)
		return false
	}
	return true
}
