package chat

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uberhub/innovation-hub/backend/internal/handler/httperr"
	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
	chatService "github.com/uberhub/innovation-hub/backend/internal/service/chat"
	"github.com/uberhub/innovation-hub/backend/pkg/utils"
)

// Conversations 是处理器依赖的会话服务
type Conversations interface {
	Converse(ctx context.Context, req chatService.ConverseRequest) (chatService.ConverseResult, error)
	History(ctx context.Context, sessionID string) ([]chat.Turn, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc Conversations
}

// New 创建聊天处理器
func New(chatSvc Conversations) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/converse", h.handleConverse)
	r.Get("/sessions/{sessionID}/turns", h.handleHistory)
}

type converseRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
	AgentID   string `json:"agentId"`
}

// handleConverse 发送一条消息并返回模型回复
func (h *Handler) handleConverse(w http.ResponseWriter, r *http.Request) {
	var payload converseRequest
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.Converse(r.Context(), chatService.ConverseRequest{
		Prompt:    payload.Prompt,
		SessionID: payload.SessionID,
		AgentID:   payload.AgentID,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleHistory 返回会话中对用户可见的轮次
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.chatSvc.History(r.Context(), sessionID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"turns":     turns,
	})
}
