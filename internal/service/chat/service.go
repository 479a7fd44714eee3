package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
	"github.com/uberhub/innovation-hub/backend/internal/model/persona"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
)

var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrPromptRequired = errors.New("prompt is required")
)

// ConverseRequest is one user message addressed to an agent.
type ConverseRequest struct {
	Prompt    string
	SessionID string
	AgentID   string
}

// ConverseResult carries the model reply and the session it belongs to.
type ConverseResult struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// Service drives persona-primed conversations against the model gateway.
type Service struct {
	store    Store
	personas persona.Store
	gateway  ai.Gateway
	locks    *Locker
	options  ai.GenerationOptions
	newID    func() string
}

// Option customizes Service.
type Option func(*Service)

// WithGenerationOptions sets the sampling options used for chat replies.
func WithGenerationOptions(opts ai.GenerationOptions) Option {
	return func(s *Service) {
		s.options = opts
	}
}

// WithIDGenerator replaces uuid-based session ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService wires the conversation controller.
func NewService(store Store, personas persona.Store, gateway ai.Gateway, opts ...Option) *Service {
	svc := &Service{
		store:    store,
		personas: personas,
		gateway:  gateway,
		locks:    NewLocker(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Converse appends the prompt to the session, asks the model and persists
// both turns. Calls for the same session id are serialised.
func (s *Service) Converse(ctx context.Context, req ConverseRequest) (ConverseResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return ConverseResult{}, ErrPromptRequired
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.newID()
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, found, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return ConverseResult{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	if !found || len(session.Turns) == 0 {
		agent, ok := s.personas.FindByID(req.AgentID)
		if !ok {
			return ConverseResult{}, fmt.Errorf("%w: %q", ErrAgentNotFound, req.AgentID)
		}
		session = chat.Session{
			ID:        sessionID,
			AgentID:   agent.ID,
			Version:   session.Version,
			CreatedAt: session.CreatedAt,
			Turns: []chat.Turn{
				chat.UserTurn(ai.BuildPersonaPrompt(agent)),
				chat.ModelTurn(ai.PrimingAck),
			},
		}
		log.Info().Str("session", sessionID).Str("agent", agent.ID).Msg("session primed")
	} else if req.AgentID != "" && req.AgentID != session.AgentID {
		log.Warn().Str("session", sessionID).Str("agent", session.AgentID).Str("requested", req.AgentID).
			Msg("ignoring agent change on existing session")
	}

	if s.gateway == nil {
		return ConverseResult{}, fmt.Errorf("%w: no gateway configured", ai.ErrModelUnavailable)
	}

	turns := append(session.Turns, chat.UserTurn(req.Prompt))
	reply, err := s.gateway.Generate(ctx, ai.Request{Turns: turns, Options: s.options})
	if err != nil {
		err = ai.Unavailable(err)
		log.Error().Err(err).Str("session", sessionID).Msg("model call failed, session left unchanged")
		return ConverseResult{}, err
	}
	if strings.TrimSpace(reply) == "" {
		return ConverseResult{}, fmt.Errorf("%w: empty reply", ai.ErrMalformedResponse)
	}

	session.Turns = append(turns, chat.ModelTurn(reply))
	stored, err := s.store.Upsert(ctx, session)
	if err != nil {
		return ConverseResult{}, fmt.Errorf("persist session %s: %w", sessionID, err)
	}

	log.Info().Str("session", sessionID).Str("agent", stored.AgentID).Int("turns", len(stored.Turns)).Msg("conversation updated")
	return ConverseResult{Reply: reply, SessionID: sessionID}, nil
}

// History returns the caller-visible transcript, without the priming pair.
func (s *Service) History(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	session, found, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	visible := session.Visible()
	if visible == nil {
		visible = []chat.Turn{}
	}
	return visible, nil
}
