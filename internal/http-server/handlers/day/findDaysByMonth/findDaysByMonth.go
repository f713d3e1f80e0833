package findDaysByMonth

import (
	"context"
	"errors"
	"events2/internal/lib/api/request"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type MonthRequest struct {
	Year       int `validate:"required,min=1970,max=2100"`
	Month      int `validate:"required,min=1,max=12"`
	PIDs       []int
	Categories []int
}

type DaysInMonthResponse struct {
	response.Response
	Days []models.DayInRange `json:"days"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DaysInRangeGetter
type DaysInRangeGetter interface {
	GetDaysInRange(ctx context.Context, start, end time.Time, storagePids, categories []int) ([]models.DayInRange, error)
}

// New returns the days of one month for calendar views.
func New(log *slog.Logger, getter DaysInRangeGetter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.day.findDaysByMonth.New"

		log := log.With(slog.String("op", op))

		var req MonthRequest

		year, err := request.Int(r, "year")
		if err == nil {
			req.Year = year
			req.Month, err = request.Int(r, "month")
		}
		if err == nil {
			req.PIDs, err = request.IntList(r, "pids")
		}
		if err == nil {
			req.Categories, err = request.IntList(r, "categories")
		}
		if err != nil {
			log.Error("invalid query", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)

		days, err := getter.GetDaysInRange(r.Context(), start, end, req.PIDs, req.Categories)
		if err != nil {
			log.Error("failed to get days in range", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get days"))
			return
		}

		log.Info("days in month found", slog.Int("year", req.Year), slog.Int("month", req.Month), slog.Int("count", len(days)))

		responseOK(w, r, days)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, days []models.DayInRange) {
	if days == nil {
		days = []models.DayInRange{}
	}

	render.JSON(w, r, DaysInMonthResponse{
		Response: response.OK(),
		Days:     days,
	})
}
