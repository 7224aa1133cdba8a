package controller

import (
	"encoding/gob"

	"authboard/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash is a one-shot notification rendered on the next page load.
type Flash struct {
	Category string // "success" or "danger"
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// addFlash queues a flash message in the session.
func addFlash(c *gin.Context, category string, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	if err := s.Save(); err != nil {
		logger.Warning("save session flash:", err)
	}
}

// consumeFlashes drains the queued flash messages.
func consumeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		logger.Warning("save session after reading flashes:", err)
	}
	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		if f, ok := item.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
