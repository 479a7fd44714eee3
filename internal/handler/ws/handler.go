package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/handler/httperr"
	chatService "github.com/uberhub/innovation-hub/backend/internal/service/chat"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Conversations 是WebSocket通道依赖的会话服务
type Conversations interface {
	Converse(ctx context.Context, req chatService.ConverseRequest) (chatService.ConverseResult, error)
}

// Handler 通过WebSocket提供对话
type Handler struct {
	chatSvc  Conversations
	upgrader websocket.Upgrader
	// readWait 是两次入站帧或 pong 之间允许的最长间隔
	readWait time.Duration
}

// New 创建WebSocket处理器
func New(chatSvc Conversations) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		readWait: pongWait,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/converse", h.handleWebSocket)
}

type inboundMessage struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
	AgentID   string `json:"agentId"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      int    `json:"code,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// conn 串行化写操作，gorilla 连接只允许一个并发写者
type conn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg outgoingMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg.Timestamp = time.Now().Unix()
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(msg)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// handleWebSocket 处理WebSocket连接，每个入站帧对应一次对话调用
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &conn{Conn: ws}
	defer c.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c.SetReadDeadline(time.Now().Add(h.readWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(h.readWait))
	})

	go pingLoop(ctx, c)

	log.Debug().Str("remote", r.RemoteAddr).Msg("websocket connected")

	for {
		var msg inboundMessage
		if err := c.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		out := h.converse(ctx, msg)
		if err := c.send(out); err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
		// 模型调用可能超过 readWait，从回复发出后重新计时
		c.SetReadDeadline(time.Now().Add(h.readWait))
	}
}

func (h *Handler) converse(ctx context.Context, msg inboundMessage) outgoingMessage {
	result, err := h.chatSvc.Converse(ctx, chatService.ConverseRequest{
		Prompt:    msg.Prompt,
		SessionID: msg.SessionID,
		AgentID:   msg.AgentID,
	})
	if err != nil {
		code := httperr.Status(err)
		text := err.Error()
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Str("session", msg.SessionID).Msg("websocket converse failed")
			text = "internal error"
		}
		if errors.Is(err, context.Canceled) {
			text = "connection closed"
		}
		return outgoingMessage{Type: "error", SessionID: msg.SessionID, Error: text, Code: code}
	}
	return outgoingMessage{Type: "reply", SessionID: result.SessionID, Reply: result.Reply}
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
