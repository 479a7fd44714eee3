package route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/model/route"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
)

// MinFacilities is the smallest placed set worth routing through.
const MinFacilities = 2

var (
	ErrInsufficientData = errors.New("insufficient geolocated facilities")
	ErrInvalidCriteria  = errors.New("invalid route criteria")
	ErrPromptRequired   = errors.New("route request text is required")
	ErrThemeRequired    = errors.New("theme is required")
	ErrEmptyItinerary   = errors.New("itinerary has no stops")
)

var (
	criteriaOptions = ai.GenerationOptions{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxTokens: 2048}
	freeTextOptions = ai.GenerationOptions{Temperature: 0.8, TopP: 0.95, TopK: 40, MaxTokens: 2048}
	thematicOptions = ai.GenerationOptions{Temperature: 0.8, TopP: 0.95, TopK: 40, MaxTokens: 4096}
	explainOptions  = ai.GenerationOptions{Temperature: 0.9, TopP: 0.95, TopK: 40, MaxTokens: 1024}
)

// Service plans visiting itineraries with the language model. It holds no
// state between calls.
type Service struct {
	gateway ai.Gateway
}

// NewService wires the planner to a gateway. A nil gateway makes every
// planning call fail with ai.ErrModelUnavailable.
func NewService(gateway ai.Gateway) *Service {
	return &Service{gateway: gateway}
}

// PlanRoute asks for an itinerary that honours explicit criteria.
func (s *Service) PlanRoute(ctx context.Context, facilities []facility.Facility, criteria route.Criteria) (route.Itinerary, error) {
	if err := criteria.Validate(); err != nil {
		return route.Itinerary{}, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	o, err := offerFor(facilities)
	if err != nil {
		return route.Itinerary{}, err
	}

	text, err := s.generate(ctx, buildCriteriaPrompt(o, criteria), criteriaOptions)
	if err != nil {
		return route.Itinerary{}, err
	}
	it, err := reconcile(text, o, criteria.MaxStops)
	if err != nil {
		log.Warn().Err(err).Str("priority", string(criteria.Priority)).Msg("route response rejected")
		return route.Itinerary{}, err
	}
	log.Info().Str("priority", string(criteria.Priority)).Int("offered", len(o)).Int("stops", len(it.Stops)).Msg("route planned")
	return it, nil
}

// PlanRouteFromPrompt lets the model infer criteria from free text.
func (s *Service) PlanRouteFromPrompt(ctx context.Context, userText string, facilities []facility.Facility) (route.Itinerary, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return route.Itinerary{}, ErrPromptRequired
	}
	o, err := offerFor(facilities)
	if err != nil {
		return route.Itinerary{}, err
	}

	text, err := s.generate(ctx, buildFreeTextPrompt(o, userText), freeTextOptions)
	if err != nil {
		return route.Itinerary{}, err
	}
	it, err := reconcile(text, o, 0)
	if err != nil {
		log.Warn().Err(err).Msg("free-text route response rejected")
		return route.Itinerary{}, err
	}
	log.Info().Int("offered", len(o)).Int("stops", len(it.Stops)).Msg("route planned from prompt")
	return it, nil
}

// SuggestThematicRoutes returns alternative itineraries around a theme.
func (s *Service) SuggestThematicRoutes(ctx context.Context, theme string, facilities []facility.Facility) ([]route.Itinerary, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, ErrThemeRequired
	}
	o, err := offerFor(facilities)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, buildThematicPrompt(o, theme), thematicOptions)
	if err != nil {
		return nil, err
	}
	routes, err := reconcileThematic(text, o)
	if err != nil {
		log.Warn().Err(err).Str("theme", theme).Msg("thematic response rejected")
		return nil, err
	}
	log.Info().Str("theme", theme).Int("routes", len(routes)).Msg("thematic routes planned")
	return routes, nil
}

// ExplainRoute asks for a short narrative about an itinerary. The answer is
// returned as-is and nothing is stored.
func (s *Service) ExplainRoute(ctx context.Context, it route.Itinerary) (string, error) {
	if len(it.Stops) == 0 {
		return "", ErrEmptyItinerary
	}
	text, err := s.generate(ctx, buildExplainPrompt(it), explainOptions)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty explanation", ai.ErrMalformedResponse)
	}
	return text, nil
}

func (s *Service) generate(ctx context.Context, prompt string, opts ai.GenerationOptions) (string, error) {
	if s.gateway == nil {
		return "", fmt.Errorf("%w: no gateway configured", ai.ErrModelUnavailable)
	}
	text, err := s.gateway.Generate(ctx, ai.SinglePrompt(prompt, opts))
	if err != nil {
		err = ai.Unavailable(err)
		log.Error().Err(err).Msg("route model call failed")
		return "", err
	}
	return text, nil
}

func offerFor(facilities []facility.Facility) (offer, error) {
	o := newOffer(facilities)
	if len(o) < MinFacilities {
		return nil, fmt.Errorf("%w: %d placed, need at least %d", ErrInsufficientData, len(o), MinFacilities)
	}
	return o, nil
}
