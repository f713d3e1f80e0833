package updateEvent

import (
	"context"
	"errors"
	"events2/internal/http-server/actionevent"
	"events2/internal/http-server/handlers/management/eventform"
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
	"github.com/go-playground/validator/v10"
)

type EventResponse struct {
	response.Response
	Days int `json:"days"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, e *models.Event) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DayRelationCreator
type DayRelationCreator interface {
	CreateDayRelations(ctx context.Context, eventID int) (int, error)
}

func New(
	log *slog.Logger,
	dispatcher *actionevent.Dispatcher,
	event EventUpdater,
	dayRelations DayRelationCreator,
	loc *time.Location,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.management.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int("event_id", eventID))

		args := actionevent.NewArguments("event")
		dispatcher.Dispatch(&actionevent.PreProcessControllerActionEvent{
			Controller: "Management",
			Action:     "update",
			Arguments:  args,
		})

		var req eventform.Request

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
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

		e, err := req.ToEvent(args.Argument("event").PropertyMappingConfiguration(), loc)
		if err != nil {
			log.Error("failed to map event", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		e.ID = eventID

		if err = event.UpdateEvent(r.Context(), e); err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to update event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update event"))
			return
		}

		days, err := dayRelations.CreateDayRelations(r.Context(), eventID)
		if err != nil {
			log.Error("failed to create day relations", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create day relations"))
			return
		}

		log.Info("event updated", slog.Int("days", days))

		responseOK(w, r, days)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, days int) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Days:     days,
	})
}
