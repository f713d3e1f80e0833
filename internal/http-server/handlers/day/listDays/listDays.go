package listDays

import (
	"context"
	"errors"
	"events2/internal/lib/api/request"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ListRequest struct {
	Action     string `validate:"oneof=list listLatest listToday listThisWeek listRange"`
	Organizer  int    `validate:"min=0"`
	Categories []int
	PIDs       []int
}

type DaysResponse struct {
	response.Response
	Days []models.Day `json:"days"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DayLister
type DayLister interface {
	ListDays(ctx context.Context, filter models.DayFilter) ([]models.Day, error)
}

// New lists the days of one of the list actions. listLatest returns at most
// latestLimit days, one per event.
func New(log *slog.Logger, lister DayLister, latestLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.day.listDays.New"

		log := log.With(slog.String("op", op))

		req := ListRequest{Action: r.URL.Query().Get("action")}
		if req.Action == "" {
			req.Action = string(models.ListTypeList)
		}

		var err error
		if req.Organizer, err = request.Int(r, "organizer"); err != nil {
			badRequest(w, r, log, err)
			return
		}
		if req.Categories, err = request.IntList(r, "category"); err != nil {
			badRequest(w, r, log, err)
			return
		}
		if req.PIDs, err = request.IntList(r, "pids"); err != nil {
			badRequest(w, r, log, err)
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

		filter := models.DayFilter{
			ListType:    models.ListType(req.Action),
			Organizer:   req.Organizer,
			Categories:  req.Categories,
			StoragePIDs: req.PIDs,
		}
		if filter.ListType == models.ListTypeLatest {
			filter.MergeEvents = true
			filter.Limit = latestLimit
		}

		days, err := lister.ListDays(r.Context(), filter)
		if err != nil {
			log.Error("failed to list days", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list days"))
			return
		}

		log.Info("days listed", slog.String("action", req.Action), slog.Int("count", len(days)))

		responseOK(w, r, days)
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error("invalid query", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(err.Error()))
}

func responseOK(w http.ResponseWriter, r *http.Request, days []models.Day) {
	if days == nil {
		days = []models.Day{}
	}

	render.JSON(w, r, DaysResponse{
		Response: response.OK(),
		Days:     days,
	})
}
