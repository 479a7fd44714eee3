package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uberhub/innovation-hub/backend/internal/model/route"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
)

type rawStop struct {
	FacilityID json.RawMessage `json:"facilityId"`
	Order      json.RawMessage `json:"order"`
	Reason     *string         `json:"reason"`
}

type rawItinerary struct {
	Route                []rawStop `json:"route"`
	Description          string    `json:"description"`
	TotalDistance        string    `json:"totalDistance"`
	EstimatedTime        string    `json:"estimatedTime"`
	Highlights           []string  `json:"highlights"`
	OptimizationCriteria string    `json:"optimizationCriteria"`
}

type rawThematic struct {
	Routes []json.RawMessage `json:"routes"`
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
// The fence may share a line with the JSON body.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	} else if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// 去掉其他语言标记，例如 ```javascript
		if lang := strings.TrimSpace(text[:nl]); !strings.ContainsAny(lang, "{[") {
			text = text[nl+1:]
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ai.ErrMalformedResponse, fmt.Sprintf(format, args...))
}

// decodeStrict decodes exactly one JSON value from data into v.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

// reconcile maps the model's itinerary back onto the offered facilities.
// Any invalid, duplicate or out-of-range index rejects the whole response;
// no partial itinerary is ever returned. maxStops <= 0 disables the cap.
func reconcile(text string, o offer, maxStops int) (route.Itinerary, error) {
	body := stripCodeFence(text)
	if body == "" {
		return route.Itinerary{}, malformed("empty response")
	}

	var raw rawItinerary
	if err := decodeStrict([]byte(body), &raw); err != nil {
		return route.Itinerary{}, malformed("invalid itinerary JSON: %v", err)
	}
	return reconcileRaw(raw, o, maxStops)
}

func reconcileRaw(raw rawItinerary, o offer, maxStops int) (route.Itinerary, error) {
	if len(raw.Route) == 0 {
		return route.Itinerary{}, malformed("itinerary has no stops")
	}
	if maxStops > 0 && len(raw.Route) > maxStops {
		return route.Itinerary{}, malformed("itinerary has %d stops, limit is %d", len(raw.Route), maxStops)
	}

	seen := make(map[int]struct{}, len(raw.Route))
	stops := make([]route.Stop, 0, len(raw.Route))
	for i, rs := range raw.Route {
		index, err := parseIndex(rs.FacilityID)
		if err != nil {
			return route.Itinerary{}, malformed("stop %d: %v", i+1, err)
		}
		f, ok := o.at(index)
		if !ok {
			return route.Itinerary{}, malformed("stop %d: facility index %d out of range [0,%d)", i+1, index, len(o))
		}
		if _, dup := seen[index]; dup {
			return route.Itinerary{}, malformed("stop %d: facility index %d repeated", i+1, index)
		}
		seen[index] = struct{}{}

		reason := ""
		if rs.Reason != nil {
			reason = *rs.Reason
		}
		stops = append(stops, route.Stop{Order: i + 1, Facility: f, Reason: reason})
	}

	highlights := raw.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return route.Itinerary{
		Stops:           stops,
		Description:     raw.Description,
		TotalDistance:   raw.TotalDistance,
		EstimatedTime:   raw.EstimatedTime,
		Highlights:      highlights,
		CriteriaSummary: raw.OptimizationCriteria,
	}, nil
}

// parseIndex accepts only a bare JSON integer.
func parseIndex(raw json.RawMessage) (int, error) {
	token := strings.TrimSpace(string(raw))
	if token == "" || token == "null" {
		return 0, errors.New("missing facilityId")
	}
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("facilityId %s is not an integer", token)
	}
	return index, nil
}

// reconcileThematic validates a set of itineraries; one bad route rejects
// the whole answer.
func reconcileThematic(text string, o offer) ([]route.Itinerary, error) {
	body := stripCodeFence(text)
	if body == "" {
		return nil, malformed("empty response")
	}

	var raw rawThematic
	if err := decodeStrict([]byte(body), &raw); err != nil {
		return nil, malformed("invalid thematic JSON: %v", err)
	}
	if len(raw.Routes) == 0 {
		return nil, malformed("thematic answer has no routes")
	}

	out := make([]route.Itinerary, 0, len(raw.Routes))
	for i, data := range raw.Routes {
		var it rawItinerary
		if err := decodeStrict(data, &it); err != nil {
			return nil, malformed("route %d: %v", i+1, err)
		}
		reconciled, err := reconcileRaw(it, o, 0)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i+1, err)
		}
		out = append(out, reconciled)
	}
	return out, nil
}
