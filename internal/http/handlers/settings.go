package handlers

import (
	"net/http"

	"jobeditor/internal/posting"
)

func (a *App) GetPostingDefaults(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Settings.Current())
}

func (a *App) PutPostingDefaults(w http.ResponseWriter, r *http.Request) {
	var d posting.Defaults
	if err := decode(r, &d); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Settings.Save(d); err != nil {
		a.Log.Error().Err(err).Msg("save posting defaults")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save defaults")
		return
	}
	a.json(w, http.StatusOK, a.Settings.Current())
}
