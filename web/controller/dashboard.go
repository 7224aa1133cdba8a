package controller

import (
	"net/http"

	"authboard/logger"
	"authboard/web/service"
	"authboard/web/session"

	"github.com/gin-gonic/gin"
)

// DashboardController renders the page behind the login gate.
type DashboardController struct {
	BaseController

	userService service.UserService
}

// NewDashboardController creates a DashboardController and registers its
// routes.
func NewDashboardController(g *gin.RouterGroup) *DashboardController {
	a := &DashboardController{}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g.GET("/dashboard", a.checkLogin, a.dashboard)
}

// dashboard restores the user from the store by the id carried in the
// session. A session pointing at a vanished user is cleared.
func (a *DashboardController) dashboard(c *gin.Context) {
	id, _ := session.GetLoginUserID(c)

	user, err := a.userService.GetByID(id)
	if err != nil {
		logger.Error("restore session user:", err)
		c.String(http.StatusInternalServerError, genericServerError)
		return
	}
	if user == nil {
		if err := session.ClearSession(c); err != nil {
			logger.Warning("clear stale session:", err)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	html(c, http.StatusOK, "dashboard.html", gin.H{
		"title": "Dashboard",
		"user":  user,
	})
}
