package facility

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog holds the facility list loaded at startup. It is read-only.
type Catalog struct {
	items []Facility
}

// NewCatalog copies items into a new catalog.
func NewCatalog(items []Facility) *Catalog {
	return &Catalog{items: append([]Facility(nil), items...)}
}

// List returns every facility, placed or not.
func (c *Catalog) List() []Facility {
	return append([]Facility(nil), c.items...)
}

// Placed returns the facilities with usable coordinates.
func (c *Catalog) Placed() []Facility {
	return Placed(c.items)
}

// LoadFile reads a JSON array of facilities. An empty path yields the built-in seed.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewCatalog(Seed()), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facility catalog: %w", err)
	}

	var items []Facility
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode facility catalog: %w", err)
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if items[i].Name == "" {
			return nil, fmt.Errorf("facility #%d has no name", i)
		}
	}
	return NewCatalog(items), nil
}

// Seed is a small catalog around Uberlândia used when no file is configured.
func Seed() []Facility {
	at := func(lat, lng float64) *Coordinates { return &Coordinates{Lat: lat, Lng: lng} }
	return []Facility{
		{Name: "AgroSense", Sector: "Agronegócio", Segment: "AgTech", Phase: "Tração", Location: at(-18.9113, -48.2622), Address: "Av. Rondon Pacheco, 1200", Solution: "Sensores de umidade do solo conectados", Audience: "B2B"},
		{Name: "MedFlow", Sector: "Saúde", Segment: "HealthTech", Phase: "Operação", Location: at(-18.9241, -48.2810), Address: "Rua Goiás, 455", Solution: "Agendamento inteligente para clínicas", Audience: "B2B"},
		{Name: "EduPlay", Sector: "Educação", Segment: "EdTech", Phase: "Ideação", Location: at(-18.9050, -48.2901), Solution: "Gamificação para ensino fundamental", Audience: "B2C"},
		{Name: "FinCerto", Sector: "Finanças", Segment: "FinTech", Phase: "Escala", Location: at(-18.9302, -48.2705), Address: "Av. João Naves de Ávila, 2100", Solution: "Crédito para pequenos varejistas", Audience: "B2B2C"},
		{Name: "LogiRota", Sector: "Logística", Phase: "Tração", Location: at(-18.8987, -48.2555), Solution: "Roteirização de entregas urbanas", Audience: "B2B"},
		{Name: "VerdeVivo", Sector: "Sustentabilidade", Segment: "CleanTech", Phase: "Validação", Solution: "Compostagem de resíduos de restaurantes", Audience: "B2B"},
	}
}
