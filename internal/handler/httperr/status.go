// Package httperr maps service errors onto HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
	chatService "github.com/uberhub/innovation-hub/backend/internal/service/chat"
	routeService "github.com/uberhub/innovation-hub/backend/internal/service/route"
	"github.com/uberhub/innovation-hub/backend/pkg/utils"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, chatService.ErrAgentNotFound),
		errors.Is(err, chatService.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chatService.ErrPromptRequired),
		errors.Is(err, chatService.ErrInvalidSession),
		errors.Is(err, routeService.ErrInvalidCriteria),
		errors.Is(err, routeService.ErrPromptRequired),
		errors.Is(err, routeService.ErrThemeRequired),
		errors.Is(err, routeService.ErrEmptyItinerary):
		return http.StatusBadRequest
	case errors.Is(err, routeService.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chatService.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, ai.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ai.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body. Internal errors are logged and
// their text is not exposed.
func Respond(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("unhandled service error")
		utils.RespondError(w, status, "internal error")
		return
	}
	utils.RespondError(w, status, err.Error())
}
