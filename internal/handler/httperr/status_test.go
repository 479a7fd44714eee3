package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
	chatService "github.com/uberhub/innovation-hub/backend/internal/service/chat"
	routeService "github.com/uberhub/innovation-hub/backend/internal/service/route"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %q", chatService.ErrAgentNotFound, "x"), http.StatusNotFound},
		{chatService.ErrSessionNotFound, http.StatusNotFound},
		{chatService.ErrPromptRequired, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", routeService.ErrInvalidCriteria), http.StatusBadRequest},
		{fmt.Errorf("%w: 1 placed", routeService.ErrInsufficientData), http.StatusUnprocessableEntity},
		{chatService.ErrVersionConflict, http.StatusConflict},
		{ai.Unavailable(errors.New("timeout")), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: route", ai.ErrMalformedResponse), http.StatusBadGateway},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestRespondHidesInternalErrors(t *testing.T) {
	resp := httptest.NewRecorder()
	Respond(resp, errors.New("database password leaked"))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "password")
}
