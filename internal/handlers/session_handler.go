package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/session"
)

type SessionHandler struct {
	store session.Store
}

func NewSessionHandler(store session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Reset drops whatever the chat session was in the middle of.
func (h *SessionHandler) Reset(c *gin.Context) {
	sc := middleware.SessionFrom(c)

	if err := h.store.Clear(c.Request.Context(), sc.ID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}
