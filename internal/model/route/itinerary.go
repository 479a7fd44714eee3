package route

import "github.com/uberhub/innovation-hub/backend/internal/model/facility"

// Stop is one visit of an itinerary.
type Stop struct {
	Order    int               `json:"order"`
	Facility facility.Facility `json:"facility"`
	Reason   string            `json:"reason"`
}

// Itinerary is an ordered, rationale-annotated visiting plan.
type Itinerary struct {
	Stops           []Stop   `json:"stops"`
	Description     string   `json:"description"`
	TotalDistance   string   `json:"totalDistance"`
	EstimatedTime   string   `json:"estimatedTime"`
	Highlights      []string `json:"highlights"`
	CriteriaSummary string   `json:"criteriaSummary"`
}
