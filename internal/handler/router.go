package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/uberhub/innovation-hub/backend/internal/handler/chat"
	"github.com/uberhub/innovation-hub/backend/internal/handler/persona"
	"github.com/uberhub/innovation-hub/backend/internal/handler/route"
	"github.com/uberhub/innovation-hub/backend/internal/handler/ws"
	middlewarePkg "github.com/uberhub/innovation-hub/backend/internal/middleware"
	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	personaModel "github.com/uberhub/innovation-hub/backend/internal/model/persona"
	chatService "github.com/uberhub/innovation-hub/backend/internal/service/chat"
	routeService "github.com/uberhub/innovation-hub/backend/internal/service/route"
	"github.com/uberhub/innovation-hub/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, catalog *facility.Catalog, chatSvc *chatService.Service, routeSvc *routeService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		persona.New(personas).RegisterRoutes(api)
		chat.New(chatSvc).RegisterRoutes(api)
		route.New(routeSvc, catalog).RegisterRoutes(api)
		ws.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
