package route

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uberhub/innovation-hub/backend/internal/handler/httperr"
	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/model/route"
	"github.com/uberhub/innovation-hub/backend/pkg/utils"
)

// Planner 是路线规划服务
type Planner interface {
	PlanRoute(ctx context.Context, facilities []facility.Facility, criteria route.Criteria) (route.Itinerary, error)
	PlanRouteFromPrompt(ctx context.Context, userText string, facilities []facility.Facility) (route.Itinerary, error)
	SuggestThematicRoutes(ctx context.Context, theme string, facilities []facility.Facility) ([]route.Itinerary, error)
	ExplainRoute(ctx context.Context, it route.Itinerary) (string, error)
}

// Handler 路线规划的HTTP处理器
type Handler struct {
	planner Planner
	catalog *facility.Catalog
}

// New 创建路线处理器
func New(planner Planner, catalog *facility.Catalog) *Handler {
	return &Handler{planner: planner, catalog: catalog}
}

// RegisterRoutes 注册路线相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/facilities", h.handleListFacilities)
	r.Post("/routes", h.handlePlan)
	r.Post("/routes/prompt", h.handlePrompt)
	r.Post("/routes/thematic", h.handleThematic)
	r.Post("/routes/explain", h.handleExplain)
}

// handleListFacilities 列出目录，placed=true 时只返回有坐标的
func (h *Handler) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	placedOnly, _ := strconv.ParseBool(r.URL.Query().Get("placed"))
	items := h.catalog.List()
	if placedOnly {
		items = h.catalog.Placed()
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

type planRequest struct {
	Priority route.Priority        `json:"priority"`
	Sectors  []string              `json:"sectors"`
	Phases   []string              `json:"phases"`
	MaxStops *int                  `json:"maxStops"`
	Start    *facility.Coordinates `json:"start"`
}

func (p planRequest) criteria() route.Criteria {
	c := route.Criteria{
		Priority: p.Priority,
		Sectors:  p.Sectors,
		Phases:   p.Phases,
		MaxStops: route.DefaultMaxStops,
		Start:    p.Start,
	}
	if c.Priority == "" {
		c.Priority = route.PriorityBalanced
	}
	if p.MaxStops != nil {
		c.MaxStops = *p.MaxStops
	}
	return c
}

// handlePlan 按显式条件规划路线
func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	var payload planRequest
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.planner.PlanRoute(r.Context(), h.catalog.List(), payload.criteria())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, it)
}

// handlePrompt 根据自由文本规划路线
func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.planner.PlanRouteFromPrompt(r.Context(), payload.Prompt, h.catalog.List())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, it)
}

// handleThematic 生成主题路线
func (h *Handler) handleThematic(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Theme string `json:"theme"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	routes, err := h.planner.SuggestThematicRoutes(r.Context(), payload.Theme, h.catalog.List())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"routes": routes})
}

// handleExplain 为已有路线生成说明，服务端不保存任何内容
func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Itinerary route.Itinerary `json:"itinerary"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := h.planner.ExplainRoute(r.Context(), payload.Itinerary)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"explanation": text})
}
