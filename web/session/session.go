// Package session wraps gin-contrib/sessions with the cookie layout used
// by authboard: the logged-in user's id, a cached display name, and the
// anti-forgery token.
package session

import (
	"crypto/subtle"

	"authboard/database/model"
	"authboard/util/random"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserID   = "LOGIN_USER_ID"
	loginUsername = "LOGIN_USERNAME"
	csrfToken     = "CSRF_TOKEN"

	// csrfTokenBytes yields a 32-char hex token, 128 bits of entropy.
	csrfTokenBytes = 16
)

// SetLoginUser regenerates the session for a freshly authenticated user:
// prior state is discarded, the user reference and a new anti-forgery token
// are set, and the cookie lifetime becomes maxAge seconds.
func SetLoginUser(c *gin.Context, user *model.User, maxAge int) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(loginUserID, user.Id)
	s.Set(loginUsername, user.Username)
	s.Set(csrfToken, random.Hex(csrfTokenBytes))
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUserID returns the id stored by SetLoginUser, or false when the
// session carries no authenticated user.
func GetLoginUserID(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserID); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// GetLoginUsername returns the cached display name, if any.
func GetLoginUsername(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginUsername); obj != nil {
		if name, ok := obj.(string); ok {
			return name
		}
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUserID(c)
	return ok
}

// GetCSRFToken returns the session's anti-forgery token, generating and
// persisting one on first access.
func GetCSRFToken(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(csrfToken); obj != nil {
		if token, ok := obj.(string); ok && token != "" {
			return token
		}
	}
	token := random.Hex(csrfTokenBytes)
	s.Set(csrfToken, token)
	if err := s.Save(); err != nil {
		return ""
	}
	return token
}

// CheckCSRFToken compares a client-submitted token against the session's
// in constant time.
func CheckCSRFToken(c *gin.Context, submitted string) bool {
	s := sessions.Default(c)
	obj := s.Get(csrfToken)
	if obj == nil {
		return false
	}
	token, ok := obj.(string)
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) == 1
}

// ClearSession wipes all session state and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
