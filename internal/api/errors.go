package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"reward_wheel/internal/model"
)

// Status - HTTP статус для ошибки сервиса
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrWheelNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidWheel),
		errors.Is(err, model.ErrCampaignRequired),
		errors.Is(err, model.ErrParticipantRequired):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAlreadySpun):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidClaim):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError - текст внутренних ошибок наружу не отдаём, только в лог
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
