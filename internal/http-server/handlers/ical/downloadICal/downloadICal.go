package downloadICal

import (
	"bytes"
	"context"
	"errors"
	"events2/internal/ics"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/storage"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DayGetter
type DayGetter interface {
	GetDay(ctx context.Context, eventID int, timestamp time.Time) (*models.Day, error)
}

// New sends one day of an event as an iCalendar file.
func New(log *slog.Logger, getter DayGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ical.downloadICal.New"

		log := log.With(slog.String("op", op))

		eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		timestamp, err := strconv.ParseInt(chi.URLParam(r, "timestamp"), 10, 64)
		if err != nil {
			log.Error("invalid timestamp format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid timestamp format"))
			return
		}

		day, err := getter.GetDay(r.Context(), eventID, time.Unix(timestamp, 0))
		if err != nil {
			if errors.Is(err, storage.ErrDayNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("day not found"))
				return
			}

			log.Error("failed to get day", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get day"))
			return
		}

		var buf bytes.Buffer
		if err = ics.Export(&buf, day, time.Now()); err != nil {
			log.Error("failed to export day", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to export day"))
			return
		}

		log.Info("day exported", slog.Int("event_id", eventID), slog.Int64("timestamp", timestamp))

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ics.Filename(day)))
		_, _ = w.Write(buf.Bytes())
	}
}
