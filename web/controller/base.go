// Package controller provides the HTTP request handlers of authboard:
// registration, login, logout and the gated dashboard.
package controller

import (
	"net/http"

	"authboard/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the login gate shared by protected controllers.
type BaseController struct{}

// checkLogin redirects anonymous browsers to the login page and answers
// AJAX callers with a bare 401.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in to access this page.")
		} else {
			c.Redirect(http.StatusSeeOther, "/")
		}
		c.Abort()
	} else {
		c.Next()
	}
}
