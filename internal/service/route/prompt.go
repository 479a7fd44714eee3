package route

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/model/route"
)

// offer is the subset of the catalog shown to the model for one request.
// A facility's local index is its position in this slice and means nothing
// outside the request that built it.
type offer []facility.Facility

func newOffer(items []facility.Facility) offer {
	return offer(facility.Placed(items))
}

// at dereferences a local index after checking bounds.
func (o offer) at(index int) (facility.Facility, bool) {
	if index < 0 || index >= len(o) {
		return facility.Facility{}, false
	}
	return o[index], true
}

type offeredFacility struct {
	ID        int     `json:"id"`
	Name      string  `json:"nome"`
	Sector    string  `json:"setor"`
	Phase     string  `json:"fase"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"endereco,omitempty"`
	Solution  string  `json:"solucao,omitempty"`
	Audience  string  `json:"publico_alvo,omitempty"`
	Employees string  `json:"colaboradores,omitempty"`
}

func (o offer) render() string {
	rows := make([]offeredFacility, len(o))
	for i, f := range o {
		rows[i] = offeredFacility{
			ID:        i,
			Name:      f.Name,
			Sector:    f.SectorLabel(),
			Phase:     f.Phase,
			Latitude:  f.Location.Lat,
			Longitude: f.Location.Lng,
			Address:   f.Address,
			Solution:  f.Solution,
			Audience:  f.Audience,
			Employees: f.Employees,
		}
	}
	// Marshalling plain strings and numbers cannot fail.
	data, _ := json.MarshalIndent(rows, "", "  ")
	return string(data)
}

const itineraryShape = `{
  "route": [
    {
      "facilityId": 0,
      "order": 1,
      "reason": "Razão para incluir esta startup nesta posição"
    }
  ],
  "description": "Descrição geral da rota e seu propósito",
  "totalDistance": "Estimativa de distância total (ex: '15 km')",
  "estimatedTime": "Tempo estimado de visitação (ex: '4 horas')",
  "highlights": [
    "Destaque 1 da rota",
    "Destaque 2 da rota"
  ],
  "optimizationCriteria": "Resumo do critério usado na otimização"
}`

const jsonOnly = "Responda APENAS com o JSON, sem texto adicional."

func describePriority(c route.Criteria) string {
	switch c.Priority {
	case route.PriorityDistance:
		return "Priorize a menor distância total entre as startups, criando uma rota geograficamente eficiente."
	case route.PrioritySector:
		return fmt.Sprintf("Priorize startups dos setores: %s. Agrupe startups do mesmo setor quando possível.", joinOrAny(c.Sectors))
	case route.PriorityPhase:
		return fmt.Sprintf("Priorize startups nas fases: %s. Crie uma jornada que mostre a evolução das startups.", joinOrAny(c.Phases))
	default:
		return "Crie uma rota balanceada considerando distância, diversidade de setores e fases das startups."
	}
}

func joinOrAny(values []string) string {
	if len(values) == 0 {
		return "qualquer"
	}
	return strings.Join(values, ", ")
}

func buildCriteriaPrompt(o offer, c route.Criteria) string {
	var b strings.Builder
	b.WriteString("Você é um especialista em criar rotas de visitação para ecossistemas de inovação. ")
	b.WriteString("Sua tarefa é criar uma rota otimizada para visitar startups em Uberlândia.\n\n")
	b.WriteString("**Contexto:**\n")
	b.WriteString("- As rotas devem ser educativas, eficientes e interessantes\n")
	b.WriteString("- Cada rota deve contar uma história sobre o ecossistema de inovação local\n\n")
	b.WriteString("**Dados das Startups:**\n")
	b.WriteString(o.render())
	b.WriteString("\n\n**Critérios de Otimização:**\n")
	fmt.Fprintf(&b, "- %s\n", describePriority(c))
	fmt.Fprintf(&b, "- Número máximo de paradas: %d\n", c.MaxStops)
	if c.Start != nil {
		fmt.Fprintf(&b, "- Ponto de partida: %g, %g\n", c.Start.Lat, c.Start.Lng)
	}
	b.WriteString("\n**Instruções:**\n")
	b.WriteString("1. Analise todas as startups disponíveis\n")
	b.WriteString("2. Selecione as startups mais relevantes baseado nos critérios\n")
	b.WriteString("3. Ordene as startups criando uma rota lógica e eficiente\n")
	b.WriteString("4. Para cada startup na rota, explique por que ela foi incluída\n")
	b.WriteString("5. Use em \"facilityId\" exatamente o campo \"id\" da startup e não repita startups\n\n")
	b.WriteString("**Formato de Resposta (JSON):**\n")
	b.WriteString(itineraryShape)
	b.WriteString("\n\n")
	b.WriteString(jsonOnly)
	return b.String()
}

func buildFreeTextPrompt(o offer, userText string) string {
	var b strings.Builder
	b.WriteString("Você é um assistente especializado em criar rotas de visitação para o ecossistema de startups de Uberlândia.\n\n")
	b.WriteString("**Sua tarefa:**\nAnalise o pedido do usuário e crie uma rota otimizada de visitação às startups.\n\n")
	b.WriteString("**Dados das Startups Disponíveis:**\n")
	b.WriteString(o.render())
	b.WriteString("\n\n**Pedido do Usuário:**\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", userText)
	b.WriteString("**Instruções:**\n")
	b.WriteString("1. Interprete o pedido do usuário identificando:\n")
	b.WriteString("   - Número de startups desejadas\n")
	b.WriteString("   - Região/localização preferida (centro, bairro específico, etc)\n")
	b.WriteString("   - Setor de interesse (se mencionado)\n")
	b.WriteString("   - Fase das startups (se mencionado)\n")
	b.WriteString("   - Qualquer outro critério específico\n")
	b.WriteString("2. Selecione as startups mais adequadas baseado nos critérios identificados\n")
	b.WriteString("3. Ordene as startups criando uma rota geograficamente eficiente\n")
	b.WriteString("4. Se o usuário não especificar quantidade, sugira entre 5-7 startups\n")
	b.WriteString("5. Se o usuário mencionar uma região sem dados precisos de bairros, use as coordenadas para identificar startups próximas\n")
	b.WriteString("6. Use em \"facilityId\" exatamente o campo \"id\" da startup e não repita startups\n\n")
	b.WriteString("**Formato de Resposta (JSON):**\n")
	b.WriteString(itineraryShape)
	b.WriteString("\n\nEm \"optimizationCriteria\", resuma como você interpretou o pedido do usuário.\n\n")
	b.WriteString(jsonOnly)
	return b.String()
}

func buildThematicPrompt(o offer, theme string) string {
	var b strings.Builder
	b.WriteString("Você é um curador de experiências de inovação. Crie 3 rotas temáticas diferentes para visitar startups em Uberlândia.\n\n")
	fmt.Fprintf(&b, "**Tema Solicitado:** %s\n\n", theme)
	b.WriteString("**Dados das Startups:**\n")
	b.WriteString(o.render())
	b.WriteString("\n\n**Instruções:**\nCrie 3 rotas com diferentes abordagens:\n")
	b.WriteString("1. Rota Iniciante: para quem está começando a conhecer o ecossistema\n")
	b.WriteString("2. Rota Especializada: focada profundamente no tema\n")
	b.WriteString("3. Rota Inovadora: startups mais disruptivas e em estágio avançado\n\n")
	b.WriteString("Cada rota usa o formato abaixo, com \"facilityId\" igual ao campo \"id\" da startup:\n")
	b.WriteString(itineraryShape)
	b.WriteString("\n\n**Formato de Resposta:**\n{\n  \"routes\": [ <rota 1>, <rota 2>, <rota 3> ]\n}\n\n")
	b.WriteString(jsonOnly)
	return b.String()
}

type explainedStop struct {
	Name   string `json:"nome"`
	Sector string `json:"setor"`
	Phase  string `json:"fase"`
	Reason string `json:"motivo,omitempty"`
}

func buildExplainPrompt(it route.Itinerary) string {
	stops := make([]explainedStop, len(it.Stops))
	for i, stop := range it.Stops {
		stops[i] = explainedStop{
			Name:   stop.Facility.Name,
			Sector: stop.Facility.SectorLabel(),
			Phase:  stop.Facility.Phase,
			Reason: stop.Reason,
		}
	}
	data, _ := json.MarshalIndent(stops, "", "  ")

	var b strings.Builder
	b.WriteString("Explique de forma educativa e envolvente por que esta rota de visitação foi criada:\n\n")
	b.WriteString("**Rota:**\n")
	b.Write(data)
	b.WriteString("\n\n**Descrição Original:**\n")
	b.WriteString(it.Description)
	b.WriteString("\n\n**Instruções:**\n")
	b.WriteString("- Explique a lógica por trás da ordem das visitas\n")
	b.WriteString("- Destaque os aprendizados que o visitante terá\n")
	b.WriteString("- Mencione as conexões entre as startups\n")
	b.WriteString("- Use uma linguagem inspiradora e educativa\n")
	b.WriteString("- Máximo de 3 parágrafos\n\n")
	b.WriteString("Responda em texto corrido, não em JSON.")
	return b.String()
}
