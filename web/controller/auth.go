package controller

import (
	"net/http"

	"authboard/config"
	"authboard/logger"
	"authboard/web/service"
	"authboard/web/session"
	"authboard/web/validation"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// genericServerError is the only thing a storage fault is allowed to say.
const genericServerError = "Something went wrong on our side. Please try again later."

// AuthController handles the login page, registration, login and logout.
type AuthController struct {
	BaseController

	authService *service.AuthService
}

// NewAuthController creates an AuthController and registers its routes.
func NewAuthController(g *gin.RouterGroup, authService *service.AuthService) *AuthController {
	a := &AuthController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/register", a.registerPage)

	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
}

// index shows the login page, or forwards straight to the dashboard for a
// browser that already carries a valid session.
func (a *AuthController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
		return
	}
	html(c, http.StatusOK, "login.html", gin.H{"title": "Log in", "email": ""})
}

func (a *AuthController) registerPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
		return
	}
	html(c, http.StatusOK, "register.html", gin.H{"title": "Register", "username": "", "email": ""})
}

// register handles a registration submission. Failures re-render the form
// with field-scoped messages; a storage fault renders a generic message.
func (a *AuthController) register(c *gin.Context) {
	var form validation.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, http.StatusBadRequest, "register.html", gin.H{
			"title":    "Register",
			"username": "",
			"email":    "",
			"errors":   validation.Errors{"form": {"Invalid form data."}},
		})
		return
	}

	result := a.authService.Register(form)
	if result.Success {
		logger.Infof("user %q registered (%s), IP: %s", result.User.Username, result.User.Email, getRemoteIp(c))
		addFlash(c, "success", "Registration successful! Please log in.")
		redirect(c, "/")
		return
	}

	data := gin.H{
		"title":    "Register",
		"username": form.Username,
		"email":    form.Email,
	}
	switch result.Kind {
	case service.FailureConflict:
		data["errors"] = result.FieldErrors
		html(c, http.StatusConflict, "register.html", data)
	case service.FailureInternal:
		data["errors"] = validation.Errors{"form": {genericServerError}}
		html(c, http.StatusInternalServerError, "register.html", data)
	default:
		data["errors"] = result.FieldErrors
		html(c, http.StatusBadRequest, "register.html", data)
	}
}

// login handles a login submission and establishes the session on success.
func (a *AuthController) login(c *gin.Context) {
	var form validation.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, http.StatusBadRequest, "login.html", gin.H{
			"title":  "Log in",
			"email":  "",
			"errors": validation.Errors{"form": {"Invalid form data."}},
		})
		return
	}

	result := a.authService.Login(form)
	if result.Success {
		maxAge := config.GetSessionMaxAge() * 60
		if err := session.SetLoginUser(c, result.User, maxAge); err != nil {
			logger.Warning("save session on login:", err)
			html(c, http.StatusInternalServerError, "login.html", gin.H{
				"title":  "Log in",
				"email":  form.Email,
				"errors": validation.Errors{"form": {genericServerError}},
			})
			return
		}
		logger.Infof("user %q logged in, IP: %s", result.User.Username, getRemoteIp(c))
		addFlash(c, "success", "Login successful!")
		redirect(c, "/dashboard")
		return
	}

	data := gin.H{
		"title": "Log in",
		"email": form.Email,
	}
	switch result.Kind {
	case service.FailureInternal:
		data["errors"] = validation.Errors{"form": {genericServerError}}
		html(c, http.StatusInternalServerError, "login.html", data)
	default:
		logger.Warningf("failed login for email %q, IP: %s", form.Email, getRemoteIp(c))
		data["errors"] = result.FieldErrors
		html(c, http.StatusBadRequest, "login.html", data)
	}
}

// logout clears the session. Logging out an anonymous session is a no-op.
func (a *AuthController) logout(c *gin.Context) {
	if name := session.GetLoginUsername(c); name != "" {
		logger.Infof("user %q logged out", name)
	}
	a.authService.Logout(sessions.Default(c))
	redirect(c, "/")
}
