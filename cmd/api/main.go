package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	"github.com/BruksfildServices01/barber-slots/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-slots/internal/db"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-slots/internal/infra/repository"
	"github.com/BruksfildServices01/barber-slots/internal/logs"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/notify"
	"github.com/BruksfildServices01/barber-slots/internal/observability"
	"github.com/BruksfildServices01/barber-slots/internal/routes"
	"github.com/BruksfildServices01/barber-slots/internal/scheduler"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
	ucSlot "github.com/BruksfildServices01/barber-slots/internal/usecase/slot"
)

func main() {

	cfg := config.Load()
	log := logs.New(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	policy, err := cfg.SlotPolicy()
	if err != nil {
		return err
	}
	clock := timezone.NewClock(cfg.Timezone)

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		db          *gorm.DB
		slots       slot.Store
		catalogRepo catalog.Repository
	)
	switch cfg.StoreDriver {
	case "memory":
		mem := memory.New()
		slots, catalogRepo = mem, mem
	default:
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		slots = infraRepo.NewSlotGormRepository(db)
		catalogRepo = infraRepo.NewCatalogGormRepository(db)
	}

	// ======================================================
	// SESSIONS
	// ======================================================
	var sessions session.Store
	switch cfg.SessionDriver {
	case "redis":
		rdb, err := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	// ======================================================
	// NOTIFIER
	// ======================================================
	var sender notify.Sender
	switch cfg.Notifier {
	case "amqp":
		s := notify.NewAMQPSender(cfg.AMQPUrl, cfg.NotifyQueue)
		defer s.Close()
		sender = s
	case "twilio":
		sender = notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	default:
		sender = notify.LogSender{Log: log}
	}

	// ======================================================
	// AUDIT / SWEEP / PENDING NOTICES
	// ======================================================
	auditLogger := audit.New(db, log)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	defer auditDispatcher.Close()

	sweeper := ucSlot.NewSweeper(slots, catalogRepo, clock, auditDispatcher, log)
	followerNotifier := ucSlot.NewFollowerNotifier(slots, catalogRepo, clock, sender, log)

	if spec := cfg.SweepSchedule(); spec != "" {
		sched, err := scheduler.New(spec, clock.Location(), sweeper, followerNotifier, log)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(),
		middleware.TracingMiddleware(),
		middleware.RequestLogger(log),
	)

	routes.RegisterRoutes(r, routes.Infra{
		Cfg:      cfg,
		Log:      log,
		Clock:    clock,
		Policy:   policy,
		Slots:    slots,
		Catalog:  catalogRepo,
		Sessions: sessions,
		Sender:   sender,
		Audit:    auditDispatcher,
		AuditLog: auditLogger,
		Sweeper:  sweeper,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", cfg.Addr()), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
