package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"jobeditor/internal/middleware"
	"jobeditor/internal/session"
	"jobeditor/internal/settings"
)

// App carries the dependencies shared by every handler.
type App struct {
	Sessions *session.Manager
	Settings *settings.Provider
	Checks   map[string]Check
	Log      zerolog.Logger
}

func NewApp(sessions *session.Manager, defaults *settings.Provider, log zerolog.Logger) *App {
	return &App{Sessions: sessions, Settings: defaults, Checks: map[string]Check{}, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) currentEmployerID(r *http.Request) string {
	return middleware.EmployerIDFromContext(r.Context())
}

// decode reads a JSON body. Numbers are kept as json.Number so form coercion
// sees the value the client sent.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.UseNumber()
	return dec.Decode(v)
}
