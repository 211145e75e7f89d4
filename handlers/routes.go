package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Log       *zap.SugaredLogger
	View      *Renderer
	Tasks     TaskStore
	Groceries GroceryStore
	Cards     CardStore
	Enricher  CardEnricher
	DB        Pinger
	// StaticDir is served under /static/. Empty disables it.
	StaticDir string
}

// NewRouter wires every route and wraps them in request logging and
// panic recovery.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	if d.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(d.StaticDir))
		mux.Handle("GET /static/", http.StripPrefix("/static", fileServer))
	}

	mux.HandleFunc("GET /{$}", page(d, "main"))
	mux.HandleFunc("GET /bio", page(d, "bio"))
	mux.HandleFunc("GET /resume", page(d, "resume"))
	mux.HandleFunc("GET /health", health(d))

	tasks := &TaskHandler{Store: d.Tasks, View: d.View, Log: d.Log}
	mux.HandleFunc("GET /tasks", tasks.List)
	mux.HandleFunc("POST /tasks", tasks.Create)
	mux.HandleFunc("GET /tasks/{id}/delete", tasks.Delete)
	mux.HandleFunc("GET /tasks/{id}/update", tasks.Edit)
	mux.HandleFunc("POST /tasks/{id}/update", tasks.Update)

	groceries := &GroceryHandler{Store: d.Groceries, View: d.View, Log: d.Log}
	mux.HandleFunc("GET /groceries", groceries.List)
	mux.HandleFunc("POST /groceries", groceries.Create)
	mux.HandleFunc("GET /groceries/{id}/delete", groceries.Delete)
	mux.HandleFunc("GET /groceries/{id}/update", groceries.Edit)
	mux.HandleFunc("POST /groceries/{id}/update", groceries.Update)

	cards := &CardHandler{Store: d.Cards, Enricher: d.Enricher, View: d.View, Log: d.Log}
	mux.HandleFunc("GET /cards", cards.List)
	mux.HandleFunc("POST /cards", cards.Create)
	mux.HandleFunc("GET /cards/{id}/delete", cards.Delete)
	mux.HandleFunc("GET /cards/{id}/update", cards.Edit)
	mux.HandleFunc("POST /cards/{id}/update", cards.Update)

	return RequestLogger(d.Log, Recover(mux))
}

func page(d Deps, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, loggerFrom(r.Context(), d.Log), d.View, name, nil)
	}
}

func health(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.DB.Ping(ctx); err != nil {
				loggerFrom(r.Context(), d.Log).Errorw("health check failed", "error", err)
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		body := map[string]any{"status": status, "timestamp": time.Now().UTC()}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			loggerFrom(r.Context(), d.Log).Errorw("error writing health response", "error", err)
		}
	}
}
