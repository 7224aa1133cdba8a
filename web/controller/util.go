package controller

import (
	"net"
	"net/http"
	"strings"

	"authboard/config"
	"authboard/web/entity"
	"authboard/web/session"
	"authboard/web/validation"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client IP from proxy headers or the remote
// address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// pureJsonMsg sends a JSON envelope with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the session's CSRF token, pending flash
// messages and common context injected.
func html(c *gin.Context, statusCode int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["csrf_token"] = session.GetCSRFToken(c)
	if _, ok := data["errors"]; !ok {
		data["errors"] = validation.Errors{}
	}
	if _, ok := data["flashes"]; !ok {
		data["flashes"] = consumeFlashes(c)
	}
	data["cur_ver"] = config.GetVersion()
	c.HTML(statusCode, name, data)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// redirect issues a see-other redirect so a POST never gets replayed by the
// browser on back/refresh.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
