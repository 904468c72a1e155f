package handlers

import (
	"errors"
	"net/http"

	"jobeditor/internal/domain"
	"jobeditor/internal/posting"
	"jobeditor/internal/save"
	"jobeditor/internal/session"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errorBody{Code: errCode, Message: message}})
}

// fail maps an error from the session layer to a response.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := describe(err)
	if status >= http.StatusInternalServerError {
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	a.json(w, status, map[string]any{"error": body})
}

func describe(err error) (int, errorBody) {
	var (
		se *save.Error
		fe domain.FieldError
	)
	switch {
	case errors.As(err, &se):
		b := errorBody{Code: string(se.Kind), Message: se.Message, Fields: se.Fields}
		switch se.Kind {
		case save.KindValidation:
			return http.StatusUnprocessableEntity, b
		case save.KindAuth:
			return http.StatusUnauthorized, b
		case save.KindStorage:
			return http.StatusServiceUnavailable, b
		default:
			return http.StatusBadGateway, b
		}
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity, errorBody{Code: "validation", Message: fe.Error(), Fields: []domain.FieldError{fe}}
	case errors.Is(err, save.ErrSaveInFlight):
		return http.StatusConflict, errorBody{Code: "save_in_flight", Message: "A save is already in progress"}
	case errors.Is(err, session.ErrLocked):
		return http.StatusConflict, errorBody{Code: "locked", Message: "Cancel the pending save before editing"}
	case errors.Is(err, save.ErrInvalidState):
		return http.StatusConflict, errorBody{Code: "invalid_state", Message: "This action is not available right now"}
	case errors.Is(err, session.ErrClosed):
		return http.StatusConflict, errorBody{Code: "closed", Message: "This edit session has ended"}
	case errors.Is(err, session.ErrNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, posting.ErrQuestionNotFound):
		return http.StatusNotFound, errorBody{Code: "not_found", Message: "not found"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody{Code: "forbidden", Message: "forbidden"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Code: "auth", Message: save.MsgAuth}
	default:
		return http.StatusInternalServerError, errorBody{Code: "internal", Message: "internal error"}
	}
}
