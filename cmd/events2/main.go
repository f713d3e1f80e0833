package main

import (
	"context"
	"errors"
	"events2/internal/config"
	"events2/internal/dayrelation"
	"events2/internal/http-server/actionevent"
	"events2/internal/http-server/handlers/day/findDaysByMonth"
	"events2/internal/http-server/handlers/day/listDays"
	"events2/internal/http-server/handlers/day/listSearchResults"
	"events2/internal/http-server/handlers/day/showDay"
	"events2/internal/http-server/handlers/event/showEvent"
	"events2/internal/http-server/handlers/ical/downloadICal"
	"events2/internal/http-server/handlers/location/showLocation"
	"events2/internal/http-server/handlers/management/createEvent"
	"events2/internal/http-server/handlers/management/updateEvent"
	"events2/internal/http-server/handlers/update/checkUpdate"
	"events2/internal/http-server/handlers/update/runUpdate"
	"events2/internal/http-server/middleware/mwlogger"
	"events2/internal/lib/logger/handlers/slogpretty"
	"events2/internal/lib/logger/sl"
	"events2/internal/storage/postgres"
	"events2/internal/update"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting events2", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	loc := cfg.Location()

	storage, err := postgres.InitDB(&cfg.Database, loc)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = storage.Migrate(context.Background()); err != nil {
		log.Error("failed to migrate storage", sl.Err(err))
		os.Exit(1)
	}

	dayRelations := dayrelation.New(log, storage, dayrelation.Config{
		Location:        loc,
		RecurringPast:   cfg.DayRelation.RecurringPast,
		RecurringFuture: cfg.DayRelation.RecurringFuture,
		MaxDaysPerEvent: cfg.DayRelation.MaxDaysPerEvent,
	})
	updater := update.New(log, storage)
	dispatcher := actionevent.NewDispatcher(log, actionevent.NewSetDateFormatForPropertyMapping())

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/days", listDays.New(log, storage, cfg.List.LatestLimit))
	router.Get("/days/search", listSearchResults.New(log, storage, loc))
	router.Get("/calendar/days", findDaysByMonth.New(log, storage, loc))
	router.Get("/events/{id}", showEvent.New(log, storage))
	router.Get("/events/{id}/days/{timestamp}", showDay.New(log, storage))
	router.Get("/events/{id}/days/{timestamp}/ical", downloadICal.New(log, storage))
	router.Get("/locations/{id}", showLocation.New(log, storage))

	router.Route("/management", func(r chi.Router) {
		r.Post("/events", createEvent.New(log, dispatcher, storage, dayRelations, loc))
		r.Put("/events/{id}", updateEvent.New(log, dispatcher, storage, dayRelations, loc))
	})

	router.Get("/update", checkUpdate.New(log, updater))
	router.Post("/update", runUpdate.New(log, updater))

	scheduler := cron.New(cron.WithLocation(loc))
	_, err = scheduler.AddFunc(cfg.Scheduler.RegenerateDays, func() {
		processed, err := dayRelations.RegenerateAll(context.Background())
		if err != nil {
			log.Error("failed to regenerate days", sl.Err(err))
		}
		log.Info("days regenerated", slog.Int("events", processed))
	})
	if err != nil {
		log.Error("invalid scheduler spec", slog.String("spec", cfg.Scheduler.RegenerateDays), sl.Err(err))
		os.Exit(1)
	}
	scheduler.Start()

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
