// Package middleware contains the gin middleware chain of authboard.
package middleware

import (
	"net/http"

	"authboard/logger"
	"authboard/web/session"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware rejects state-changing requests whose csrf_token form
// field does not match the per-session anti-forgery token. The check runs
// before any handler logic.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if !session.CheckCSRFToken(c, c.PostForm("csrf_token")) {
				logger.Warningf("csrf token mismatch on %s %s from %s",
					c.Request.Method, c.Request.URL.Path, c.ClientIP())
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
		}
		c.Next()
	}
}
