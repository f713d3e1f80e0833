package showDay

import (
	"context"
	"errors"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/storage"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type DayResponse struct {
	response.Response
	Day *models.Day `json:"day"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DayGetter
type DayGetter interface {
	GetDay(ctx context.Context, eventID int, timestamp time.Time) (*models.Day, error)
}

// New shows the day of an event at a unix timestamp.
func New(log *slog.Logger, getter DayGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.day.showDay.New"

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

		log = log.With(slog.Int("event_id", eventID), slog.Int64("timestamp", timestamp))

		day, err := getter.GetDay(r.Context(), eventID, time.Unix(timestamp, 0))
		if err != nil {
			if errors.Is(err, storage.ErrDayNotFound) {
				log.Info("day not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("day not found"))
				return
			}

			log.Error("failed to get day", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get day"))
			return
		}

		log.Info("day found", slog.Int("day_id", day.ID))

		responseOK(w, r, day)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, day *models.Day) {
	render.JSON(w, r, DayResponse{
		Response: response.OK(),
		Day:      day,
	})
}
