package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-backend/internal/mw"
	"workshop-backend/internal/workorder"
)

// statusForKind maps a domain error kind to its HTTP status.
func statusForKind(kind workorder.Kind) int {
	switch kind {
	case workorder.KindBadRequest, workorder.KindInvalidTransition:
		return http.StatusBadRequest
	case workorder.KindNotFound:
		return http.StatusNotFound
	case workorder.KindConflict:
		return http.StatusConflict
	case workorder.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "kind"}. Internal causes are logged,
// never returned.
func respondError(c *gin.Context, err error) {
	var domainErr *workorder.Error
	if !errors.As(err, &domainErr) || statusForKind(domainErr.Kind) == http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %v", mw.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"kind":  workorder.KindInternal,
		})
		return
	}

	c.AbortWithStatusJSON(statusForKind(domainErr.Kind), gin.H{
		"error": domainErr.Message,
		"kind":  domainErr.Kind,
	})
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, workorder.BadRequest("invalid request: %v", err))
		return false
	}
	return true
}
