package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/dto"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/httpresp"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
	ucbooking "github.com/BruksfildServices01/barber-slots/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create   *ucbooking.CreateBooking
	cancel   *ucbooking.CancelBooking
	status   *ucbooking.SetBookingStatus
	feedback *ucbooking.Feedback
	list     *ucbooking.ListBookings
	clock    *timezone.Clock
}

func NewBookingHandler(
	create *ucbooking.CreateBooking,
	cancel *ucbooking.CancelBooking,
	status *ucbooking.SetBookingStatus,
	feedback *ucbooking.Feedback,
	list *ucbooking.ListBookings,
	clock *timezone.Clock,
) *BookingHandler {
	return &BookingHandler{
		create:   create,
		cancel:   cancel,
		status:   status,
		feedback: feedback,
		list:     list,
		clock:    clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createBookingRequest struct {
	OpenSlotID  string   `json:"open_slot_id" binding:"required"`
	ServiceIDs  []string `json:"service_ids"`
	DisplayName string   `json:"display_name"`
	Phone       string   `json:"phone"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ratingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type reviewRequest struct {
	Text string `json:"text" binding:"required"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	summary, err := h.create.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		OpenSlotID: req.OpenSlotID,
		ServiceIDs: req.ServiceIDs,
		Customer: models.Customer{
			ID:          customerID,
			DisplayName: req.DisplayName,
			Phone:       req.Phone,
		},
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, summary)
}

// Cancel gives the slot back to the barber as an open slot.
func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	open, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, open)
}

func (h *BookingHandler) Upcoming(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.Upcoming(c.Request.Context(), id)
	})
}

// Past accepts ?since=YYYY-MM-DD and otherwise uses the default window.
func (h *BookingHandler) Past(c *gin.Context) {
	since := h.clock.Now().Add(-ucbooking.DefaultPastWindow)
	if s := c.Query("since"); s != "" {
		t, err := h.clock.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must look like 2025-06-01.")
			return
		}
		since = t
	}

	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.Past(c.Request.Context(), id, since)
	})
}

func (h *BookingHandler) CustomerCompleted(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.CustomerCompleted(c.Request.Context(), id)
	})
}

func (h *BookingHandler) CustomerNoShow(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.CustomerNoShow(c.Request.Context(), id)
	})
}

func (h *BookingHandler) Rate(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_rating", "Rating must be between 1 and 5.")
		return
	}

	if err := h.feedback.Rate(c.Request.Context(), customerID, c.Param("id"), req.Rating); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

func (h *BookingHandler) Review(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "empty_review", "Review text is required.")
		return
	}

	if err := h.feedback.Review(c.Request.Context(), customerID, c.Param("id"), req.Text); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// BARBER
// ======================================================

func (h *BookingHandler) Pending(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.Pending(c.Request.Context(), id)
	})
}

func (h *BookingHandler) BarberUpcoming(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.BarberUpcoming(c.Request.Context(), id)
	})
}

func (h *BookingHandler) Completed(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.Completed(c.Request.Context(), id)
	})
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.respond(c, func(id string) ([]dto.BookingListDTO, error) {
		return h.list.NoShow(c.Request.Context(), id)
	})
}

func (h *BookingHandler) SetStatus(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	target, err := domain.Parse(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	b, err := h.status.Execute(c.Request.Context(), barberID, c.Param("id"), target)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := dto.NewBookingList([]models.BookedSlot{*b}, h.clock.Location(), h.clock.Now())
	httpresp.OK(c, out[0])
}

// Get is shared by both roles; the use case checks the caller is a party.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.list.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) respond(c *gin.Context, fetch func(userID string) ([]dto.BookingListDTO, error)) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	rows, err := fetch(userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}
