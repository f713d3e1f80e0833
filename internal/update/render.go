package update

import (
	"events2/internal/models"
	"html/template"
	"io"
)

var flashTemplate = template.Must(template.New("flash").Parse(
	`{{range .}}<div class="alert alert-{{.Severity}}">
	<h4 class="alert-title">{{.Title}}</h4>
	<p class="alert-message">{{.Message}}</p>
</div>
{{end}}`))

// RenderHTML writes the messages as alert boxes.
func RenderHTML(w io.Writer, messages []models.FlashMessage) error {
	return flashTemplate.Execute(w, messages)
}
