package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"jobeditor/internal/middleware"
	"jobeditor/internal/posting"
	"jobeditor/internal/session"
)

type setFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type itemRequest struct {
	Item string `json:"item"`
}

type optionRequest struct {
	Option string `json:"option"`
}

// OpenSession starts editing an existing posting.
func (a *App) OpenSession(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s, err := a.Sessions.Open(r.Context(), a.currentEmployerID(r), jobID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, s.View())
}

// OpenNewSession starts a draft for a posting that does not exist yet.
func (a *App) OpenNewSession(w http.ResponseWriter, r *http.Request) {
	country := middleware.CountryFromContext(r.Context())
	s := a.Sessions.OpenNew(r.Context(), a.currentEmployerID(r), country)
	a.json(w, http.StatusCreated, s.View())
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, s.View())
}

func (a *App) SetField(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req setFieldRequest
	if err := decode(r, &req); err != nil || strings.TrimSpace(req.Field) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.respond(w, r, s, func() error {
		_, err := s.Set(posting.Field(req.Field), req.Value)
		return err
	})
}

func (a *App) AddCollectionItem(w http.ResponseWriter, r *http.Request) {
	a.collection(w, r, (*session.Session).AddItem)
}

func (a *App) RemoveCollectionItem(w http.ResponseWriter, r *http.Request) {
	a.collection(w, r, (*session.Session).RemoveItem)
}

func (a *App) collection(w http.ResponseWriter, r *http.Request, op func(*session.Session, posting.Field, string) ([]string, error)) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	field := posting.Field(chi.URLParam(r, "field"))
	a.respond(w, r, s, func() error {
		_, err := op(s, field, req.Item)
		return err
	})
}

func (a *App) AddQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var q posting.Question
	if err := decode(r, &q); err != nil || strings.TrimSpace(q.Text) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "question text is required")
		return
	}
	id, _, err := s.AddQuestion(q)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id, "session": s.View()})
}

func (a *App) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var q posting.Question
	if err := decode(r, &q); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	q.ID = chi.URLParam(r, "qid")
	a.respond(w, r, s, func() error {
		_, err := s.UpdateQuestion(q)
		return err
	})
}

func (a *App) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	a.respond(w, r, s, func() error {
		_, err := s.RemoveQuestion(chi.URLParam(r, "qid"))
		return err
	})
}

func (a *App) AddOption(w http.ResponseWriter, r *http.Request) {
	a.option(w, r, (*session.Session).AddOption)
}

func (a *App) RemoveOption(w http.ResponseWriter, r *http.Request) {
	a.option(w, r, (*session.Session).RemoveOption)
}

func (a *App) option(w http.ResponseWriter, r *http.Request, op func(*session.Session, string, string) ([]string, error)) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req optionRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.respond(w, r, s, func() error {
		_, err := op(s, chi.URLParam(r, "qid"), req.Option)
		return err
	})
}

// RequestSave opens the confirmation step and returns what to show in it.
func (a *App) RequestSave(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	conf, err := s.RequestSave()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, conf)
}

func (a *App) CancelSave(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	a.respond(w, r, s, s.Cancel)
}

// ConfirmSave performs the save. The session ends on success.
func (a *App) ConfirmSave(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	res, err := s.Confirm(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.Sessions.Close(s.ID())
	a.json(w, http.StatusOK, res)
}

// DiscardSession drops the stored draft and ends the session.
func (a *App) DiscardSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := s.Discard(r.Context()); err != nil {
		a.fail(w, r, err)
		return
	}
	a.Sessions.Close(s.ID())
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {sid} parameter to a session owned by the caller.
func (a *App) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := a.Sessions.Get(chi.URLParam(r, "sid"))
	if err == nil && s.Owner() != a.currentEmployerID(r) {
		err = session.ErrNotFound
	}
	if err != nil {
		a.fail(w, r, err)
		return nil, false
	}
	return s, true
}

func (a *App) respond(w http.ResponseWriter, r *http.Request, s *session.Session, fn func() error) {
	if err := fn(); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, s.View())
}
