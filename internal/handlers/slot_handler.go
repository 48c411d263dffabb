package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/httpresp"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	ucslot "github.com/BruksfildServices01/barber-slots/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	days     *ucslot.GetDayStatus
	bookable *ucslot.ListBookable
	editor   *ucslot.BatchEditor
	sweeper  *ucslot.Sweeper
}

func NewSlotHandler(
	days *ucslot.GetDayStatus,
	bookable *ucslot.ListBookable,
	editor *ucslot.BatchEditor,
	sweeper *ucslot.Sweeper,
) *SlotHandler {
	return &SlotHandler{
		days:     days,
		bookable: bookable,
		editor:   editor,
		sweeper:  sweeper,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type beginBatchRequest struct {
	Mode string `json:"mode" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type toggleRequest struct {
	Start string `json:"start" binding:"required"`
}

type slotsRequest struct {
	Date   string   `json:"date" binding:"required"`
	Starts []string `json:"starts"`
}

// ======================================================
// BARBER: DAY VIEW
// ======================================================

func (h *SlotHandler) BarberDay(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)
	ctx := c.Request.Context()

	// expired open slots go before the view is built
	if _, err := h.sweeper.Sweep(ctx, barberID); err != nil {
		httperr.FromError(c, err)
		return
	}

	day, err := h.days.Execute(ctx, barberID, c.Param("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, day)
}

func (h *SlotHandler) Sweep(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	n, err := h.sweeper.Sweep(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"removed": n})
}

// ======================================================
// BARBER: BATCH EDITOR
// ======================================================

func (h *SlotHandler) BeginBatch(c *gin.Context) {
	var req beginBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	st, err := h.editor.Begin(c.Request.Context(), middleware.SessionFrom(c), mode, req.Date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, st)
}

func (h *SlotHandler) BatchState(c *gin.Context) {
	st, err := h.editor.State(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, st)
}

func (h *SlotHandler) ToggleBatch(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	st, err := h.editor.Toggle(c.Request.Context(), middleware.SessionFrom(c), req.Start)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, st)
}

func (h *SlotHandler) ConfirmBatch(c *gin.Context) {
	res, err := h.editor.Confirm(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *SlotHandler) CancelBatch(c *gin.Context) {
	if err := h.editor.Cancel(c.Request.Context(), middleware.SessionFrom(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// BARBER: DIRECT OPEN / CLOSE
// ======================================================

func (h *SlotHandler) Open(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.editor.Open(c.Request.Context(), barberID, req.Date, req.Starts)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, res)
}

func (h *SlotHandler) Close(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.editor.Close(c.Request.Context(), barberID, req.Date, req.Starts)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *SlotHandler) NotifyFollowers(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.editor.NotifyFollowers(c.Request.Context(), barberID, req.Date, req.Starts)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CLIENT
// ======================================================

// Bookable lists the barber's open slots from now on. An optional
// ?date= narrows it to one day.
func (h *SlotHandler) Bookable(c *gin.Context) {
	h.listBookable(c, c.Query("date"))
}

func (h *SlotHandler) BookableDay(c *gin.Context) {
	h.listBookable(c, c.Param("date"))
}

func (h *SlotHandler) listBookable(c *gin.Context, date string) {
	rows, err := h.bookable.Execute(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}
