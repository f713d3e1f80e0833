package runUpdate

import (
	"bytes"
	"context"
	"events2/internal/lib/api/response"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/update"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

type UpdateResponse struct {
	response.Response
	Messages []models.FlashMessage `json:"messages"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Updater
type Updater interface {
	Main(ctx context.Context) ([]models.FlashMessage, error)
}

// New runs all migrations. Clients accepting text/html get the messages
// rendered as alert boxes, everyone else gets JSON.
func New(log *slog.Logger, updater Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.update.runUpdate.New"

		log := log.With(slog.String("op", op))

		messages, err := updater.Main(r.Context())
		if err != nil {
			log.Error("update failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("update failed"))
			return
		}

		log.Info("update finished", slog.Int("messages", len(messages)))

		if strings.Contains(r.Header.Get("Accept"), "text/html") {
			var buf bytes.Buffer
			if err = update.RenderHTML(&buf, messages); err != nil {
				log.Error("failed to render messages", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to render messages"))
				return
			}

			render.HTML(w, r, buf.String())
			return
		}

		render.JSON(w, r, UpdateResponse{
			Response: response.OK(),
			Messages: messages,
		})
	}
}
