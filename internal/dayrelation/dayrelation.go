package dayrelation

import (
	"context"
	"errors"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/storage"
	"fmt"
	"log/slog"
	"time"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	ReplaceDays(ctx context.Context, eventID int, days []models.Day) error
	GetCurrentAndFutureEvents(ctx context.Context) ([]models.EventRecord, error)
}

type Config struct {
	Location        *time.Location
	RecurringPast   int
	RecurringFuture int
	MaxDaysPerEvent int
}

// Service keeps the day table in line with the events.
type Service struct {
	log   *slog.Logger
	store Store
	cfg   Config
	now   func() time.Time
}

func New(log *slog.Logger, store Store, cfg Config) *Service {
	return &Service{
		log:   log,
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// CreateDayRelations recomputes and stores the days of an event. Events
// which are hidden, deleted or gone lose all their days.
func (s *Service) CreateDayRelations(ctx context.Context, eventID int) (int, error) {
	const op = "dayrelation.CreateDayRelations"

	log := s.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			if err = s.store.ReplaceDays(ctx, eventID, nil); err != nil {
				return 0, fmt.Errorf("%s: %w", op, err)
			}
			log.Info("event not visible, days removed")
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := Expand(event, ExpandConfig{
		Now:             s.now(),
		Location:        s.cfg.Location,
		RecurringPast:   s.cfg.RecurringPast,
		RecurringFuture: s.cfg.RecurringFuture,
		MaxDaysPerEvent: s.cfg.MaxDaysPerEvent,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if result.Truncated {
		log.Warn("days truncated", slog.Int("cap", len(result.Days)))
	}

	if err = s.store.ReplaceDays(ctx, eventID, result.Days); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("day relations created", slog.Int("days", len(result.Days)))

	return len(result.Days), nil
}

// RegenerateAll recreates the days of all current and future events. A
// failing event is logged and skipped; the joined errors are returned.
func (s *Service) RegenerateAll(ctx context.Context) (int, error) {
	const op = "dayrelation.RegenerateAll"

	log := s.log.With(slog.String("op", op))

	events, err := s.store.GetCurrentAndFutureEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var (
		processed int
		errs      []error
	)

	for _, e := range events {
		if err = ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if _, err = s.CreateDayRelations(ctx, e.ID); err != nil {
			log.Error("failed to create day relations", slog.Int("event_id", e.ID), sl.Err(err))
			errs = append(errs, err)
			continue
		}
		processed++
	}

	log.Info("days regenerated", slog.Int("events", processed), slog.Int("failed", len(errs)))

	return processed, errors.Join(errs...)
}
