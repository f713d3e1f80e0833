package listSearchResults

import (
	"context"
	"errors"
	"events2/internal/lib/api/request"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// DateFormat is the format of begin and end in the search form.
const DateFormat = "02.01.2006"

type SearchResponse struct {
	response.Response
	Days []models.Day `json:"days"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DaySearcher
type DaySearcher interface {
	SearchDays(ctx context.Context, search models.Search) ([]models.Day, error)
}

func New(log *slog.Logger, searcher DaySearcher, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.day.listSearchResults.New"

		log := log.With(slog.String("op", op))

		search, err := parseSearch(r, loc)
		if err != nil {
			log.Error("invalid query", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		if err = validator.New().Struct(search); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		days, err := searcher.SearchDays(r.Context(), search)
		if err != nil {
			log.Error("failed to search days", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to search days"))
			return
		}

		log.Info("search finished", slog.Int("count", len(days)))

		responseOK(w, r, days)
	}
}

func parseSearch(r *http.Request, loc *time.Location) (models.Search, error) {
	q := r.URL.Query()

	search := models.Search{
		Search:    strings.TrimSpace(q.Get("search")),
		FreeEntry: request.Bool(r, "free_entry"),
	}

	var err error
	if search.MainCategory, err = request.Int(r, "category"); err != nil {
		return search, err
	}
	if search.SubCategory, err = request.Int(r, "sub_category"); err != nil {
		return search, err
	}
	if search.Location, err = request.Int(r, "location"); err != nil {
		return search, err
	}

	if v := q.Get("begin"); v != "" {
		if search.EventBegin, err = time.ParseInLocation(DateFormat, v, loc); err != nil {
			return search, errors.New("invalid begin")
		}
	}
	if v := q.Get("end"); v != "" {
		if search.EventEnd, err = time.ParseInLocation(DateFormat, v, loc); err != nil {
			return search, errors.New("invalid end")
		}
	}

	return search, nil
}

func responseOK(w http.ResponseWriter, r *http.Request, days []models.Day) {
	if days == nil {
		days = []models.Day{}
	}

	render.JSON(w, r, SearchResponse{
		Response: response.OK(),
		Days:     days,
	})
}
