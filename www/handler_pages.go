package www

import (
	"log/slog"
	"net/http"
)

// NewPageHandler renders a static page template; the pages fetch their
// data from the JSON API client side.
func NewPageHandler(logger *slog.Logger, tm *TemplateManager, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if err := tm.ExecuteToWriter(name, nil, &w); err != nil {
			logger.Error("handling page request", slog.String("template", name), slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
