package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/uberhub/innovation-hub/backend/internal/model/persona"
)

func TestListPersonasHidesPrompt(t *testing.T) {
	r := chi.NewRouter()
	New(persona.NewMemoryStore(persona.Seed())).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/personas", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	raw := resp.Body.String()
	var personas []map[string]any
	if err := json.Unmarshal([]byte(raw), &personas); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(personas) != len(persona.Seed()) {
		t.Fatalf("expected %d personas, got %d", len(persona.Seed()), len(personas))
	}
	if strings.Contains(raw, `"prompt"`) {
		t.Fatalf("persona prompt leaked: %s", raw)
	}
}
