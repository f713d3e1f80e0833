package createEvent

import (
	"context"
	"errors"
	"events2/internal/http-server/actionevent"
	"events2/internal/http-server/handlers/management/eventform"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventResponse struct {
	response.Response
	EventId int    `json:"event_id"`
	Days    int    `json:"days"`
	Warning string `json:"warning,omitempty"`
}

// warnDaysPending is returned when the event is stored but its days are not.
// The scheduled regeneration creates them later.
const warnDaysPending = "event added, days will be created by the next regeneration"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, e *models.Event) (int, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DayRelationCreator
type DayRelationCreator interface {
	CreateDayRelations(ctx context.Context, eventID int) (int, error)
}

func New(
	log *slog.Logger,
	dispatcher *actionevent.Dispatcher,
	event EventCreator,
	dayRelations DayRelationCreator,
	loc *time.Location,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.management.createEvent.New"

		log := log.With(slog.String("op", op))

		args := actionevent.NewArguments("event")
		dispatcher.Dispatch(&actionevent.PreProcessControllerActionEvent{
			Controller: "Management",
			Action:     "create",
			Arguments:  args,
		})

		var req eventform.Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title))

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

		eventId, err := event.CreateEvent(r.Context(), e)
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log = log.With(slog.Int("id", eventId))

		days, err := dayRelations.CreateDayRelations(r.Context(), eventId)
		if err != nil {
			log.Warn("event added without day relations", sl.Err(err))
			responseOK(w, r, eventId, 0, warnDaysPending)

			return
		}

		log.Info("event added", slog.Int("days", days))

		responseOK(w, r, eventId, days, "")
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventId, days int, warning string) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventId:  eventId,
		Days:     days,
		Warning:  warning,
	})
}
