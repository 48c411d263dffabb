package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	"github.com/BruksfildServices01/barber-slots/internal/config"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/handlers"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/notify"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-slots/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/barber-slots/internal/usecase/catalog"
	ucSlot "github.com/BruksfildServices01/barber-slots/internal/usecase/slot"
)

// Infra is everything the use cases are built from. main picks the
// implementations; routes only wires them.
type Infra struct {
	Cfg      *config.Config
	Log      *slog.Logger
	Clock    *timezone.Clock
	Policy   slot.Policy
	Slots    slot.Store
	Catalog  catalog.Repository
	Sessions session.Store
	Sender   notify.Sender
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Sweeper  *ucSlot.Sweeper
}

func RegisterRoutes(r *gin.Engine, in Infra) {

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES: SLOTS
	// ======================================================
	dayStatusUC := ucSlot.NewGetDayStatus(in.Slots, in.Policy, in.Clock, in.Log)
	listBookableUC := ucSlot.NewListBookable(in.Slots, in.Clock)
	batchEditorUC := ucSlot.NewBatchEditor(
		in.Slots,
		in.Catalog,
		in.Sessions,
		dayStatusUC,
		in.Policy,
		in.Clock,
		in.Sender,
		in.Audit,
		in.Log,
	)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		in.Slots,
		in.Catalog,
		in.Clock,
		in.Cfg.PhoneRegion,
		in.Audit,
		in.Log,
	)
	cancelBookingUC := ucBooking.NewCancelBooking(in.Slots, in.Clock, in.Audit)
	setStatusUC := ucBooking.NewSetBookingStatus(in.Slots, in.Clock, in.Audit)
	feedbackUC := ucBooking.NewFeedback(in.Slots, in.Clock)
	listBookingsUC := ucBooking.NewListBookings(in.Slots, in.Clock)

	// ======================================================
	// USE CASES: CATALOG
	// ======================================================
	profileUC := ucCatalog.NewProfile(in.Catalog, in.Cfg.PhoneRegion, in.Cfg.CheckEmailDomain)
	servicesUC := ucCatalog.NewServices(in.Catalog)
	descriptionsUC := ucCatalog.NewDescriptions(in.Catalog)
	followersUC := ucCatalog.NewFollowers(in.Catalog, in.Cfg.PhoneRegion)
	ratingsUC := ucCatalog.NewRatings(in.Catalog)
	earningsUC := ucCatalog.NewEarnings(in.Slots, in.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	slotHandler := handlers.NewSlotHandler(dayStatusUC, listBookableUC, batchEditorUC, in.Sweeper)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		setStatusUC,
		feedbackUC,
		listBookingsUC,
		in.Clock,
	)
	catalogHandler := handlers.NewCatalogHandler(
		profileUC,
		servicesUC,
		descriptionsUC,
		followersUC,
		ratingsUC,
		earningsUC,
	)
	sessionHandler := handlers.NewSessionHandler(in.Sessions)
	auditLogsHandler := handlers.NewAuditLogsHandler(in.AuditLog, in.Clock)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(in.Cfg))

	api.DELETE("/session", sessionHandler.Reset)
	api.GET("/bookings/:id", bookingHandler.Get)

	// ------------------------------------------------------
	// BARBER
	// ------------------------------------------------------
	barber := api.Group("/barber")
	barber.Use(middleware.RequireRole(session.RoleBarber))
	{
		barber.GET("/profile", catalogHandler.GetProfile)
		barber.PUT("/profile", catalogHandler.SaveProfile)

		barber.GET("/days/:date", slotHandler.BarberDay)
		barber.POST("/sweep", slotHandler.Sweep)

		barber.GET("/batch", slotHandler.BatchState)
		barber.POST("/batch", slotHandler.BeginBatch)
		barber.POST("/batch/toggle", slotHandler.ToggleBatch)
		barber.POST("/batch/confirm", slotHandler.ConfirmBatch)
		barber.DELETE("/batch", slotHandler.CancelBatch)

		barber.POST("/slots/open", slotHandler.Open)
		barber.POST("/slots/close", slotHandler.Close)
		barber.POST("/followers/notify", slotHandler.NotifyFollowers)

		barber.GET("/bookings/upcoming", bookingHandler.BarberUpcoming)
		barber.GET("/bookings/pending", bookingHandler.Pending)
		barber.GET("/bookings/completed", bookingHandler.Completed)
		barber.GET("/bookings/no-show", bookingHandler.NoShow)
		barber.GET("/bookings/:id", bookingHandler.Get)
		barber.PATCH("/bookings/:id/status", bookingHandler.SetStatus)

		barber.GET("/services", catalogHandler.ListServices)
		barber.POST("/services", catalogHandler.CreateService)
		barber.PUT("/services/:id", catalogHandler.UpdateService)
		barber.DELETE("/services/:id", catalogHandler.DeleteService)

		barber.GET("/descriptions", catalogHandler.ListDescriptions)
		barber.POST("/descriptions", catalogHandler.AddDescription)
		barber.PATCH("/descriptions/:id/activate", catalogHandler.ActivateDescription)
		barber.DELETE("/descriptions/:id", catalogHandler.DeleteDescription)

		barber.GET("/followers", catalogHandler.ListFollowers)
		barber.GET("/ratings", catalogHandler.Ratings)
		barber.GET("/earnings", catalogHandler.Earnings)
		barber.GET("/audit-logs", auditLogsHandler.List)
	}

	// ------------------------------------------------------
	// CLIENT
	// ------------------------------------------------------
	client := api.Group("/client")
	client.Use(middleware.RequireRole(session.RoleClient))
	{
		client.GET("/barbers/:id", catalogHandler.PublicProfile)
		client.GET("/barbers/:id/services", catalogHandler.PublicServices)
		client.GET("/barbers/:id/slots", slotHandler.Bookable)
		client.GET("/barbers/:id/days/:date", slotHandler.BookableDay)

		client.GET("/barbers/:id/follow", catalogHandler.IsFollowing)
		client.POST("/barbers/:id/follow", catalogHandler.Follow)
		client.DELETE("/barbers/:id/follow", catalogHandler.Unfollow)
		client.GET("/following", catalogHandler.Following)

		client.POST("/bookings", bookingHandler.Create)
		client.DELETE("/bookings/:id", bookingHandler.Cancel)
		client.GET("/bookings/upcoming", bookingHandler.Upcoming)
		client.GET("/bookings/past", bookingHandler.Past)
		client.GET("/bookings/completed", bookingHandler.CustomerCompleted)
		client.GET("/bookings/no-show", bookingHandler.CustomerNoShow)
		client.POST("/bookings/:id/rating", bookingHandler.Rate)
		client.POST("/bookings/:id/review", bookingHandler.Review)
	}
}
