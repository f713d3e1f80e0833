package checkUpdate

import (
	"context"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type AccessResponse struct {
	response.Response
	Access bool `json:"access"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AccessChecker
type AccessChecker interface {
	Access(ctx context.Context) (bool, error)
}

// New reports whether records are waiting for an update.
func New(log *slog.Logger, checker AccessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.update.checkUpdate.New"

		log := log.With(slog.String("op", op))

		access, err := checker.Access(r.Context())
		if err != nil {
			log.Error("failed to check update access", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to check update"))
			return
		}

		render.JSON(w, r, AccessResponse{
			Response: response.OK(),
			Access:   access,
		})
	}
}
