package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
	clock  *timezone.Clock
}

func NewAuditLogsHandler(logger *audit.Logger, clock *timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if s := c.Query("from"); s != "" {
		if from, err := h.clock.ParseDate(s); err == nil {
			f.From = from
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := h.clock.ParseDate(s); err == nil {
			f.To = h.clock.EndOfDay(to)
		}
	}

	logs, total, err := h.logger.List(c.Request.Context(), barberID, f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
