package showLocation

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type LocationResponse struct {
	response.Response
	Location *models.Location `json:"location"`
	Address  string           `json:"address"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=LocationGetter
type LocationGetter interface {
	GetLocation(ctx context.Context, id int) (*models.Location, error)
}

func New(log *slog.Logger, getter LocationGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.location.showLocation.New"

		log := log.With(slog.String("op", op))

		locationID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid location id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid location id format"))
			return
		}

		location, err := getter.GetLocation(r.Context(), locationID)
		if err != nil {
			if errors.Is(err, storage.ErrLocationNotFound) {
				log.Info("location not found", slog.Int("location_id", locationID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("location not found"))
				return
			}

			log.Error("failed to get location", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get location"))
			return
		}

		responseOK(w, r, location)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, location *models.Location) {
	render.JSON(w, r, LocationResponse{
		Response: response.OK(),
		Location: location,
		Address:  location.Address(),
	})
}
