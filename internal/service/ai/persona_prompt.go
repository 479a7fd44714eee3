package ai

import (
	"fmt"
	"strings"

	"github.com/uberhub/innovation-hub/backend/internal/model/persona"
)

// PrimingAck is the model-role acknowledgment seeded after the persona text.
const PrimingAck = "Entendido. Estou pronto para começar."

// BuildPersonaPrompt renders the persona text injected at session genesis.
func BuildPersonaPrompt(p persona.Persona) string {
	var builder strings.Builder

	intro := strings.TrimSpace(p.Prompt)
	if intro == "" {
		intro = fmt.Sprintf("Você é %s, %s.", p.Name, p.Title)
	}
	builder.WriteString(intro)

	var profile []string
	if p.Name != "" {
		profile = append(profile, "Nome: "+p.Name)
	}
	if p.Title != "" {
		profile = append(profile, "Papel: "+p.Title)
	}
	if p.Tone != "" {
		profile = append(profile, "Tom de voz: "+p.Tone)
	}
	if len(p.Traits) > 0 {
		profile = append(profile, "Traços: "+strings.Join(p.Traits, ", "))
	}
	if len(p.Expertise) > 0 {
		profile = append(profile, "Especialidades: "+strings.Join(p.Expertise, ", "))
	}
	writeSection(&builder, "Perfil do agente:", profile)
	writeSection(&builder, "Regras da conversa:", p.Rules)

	if opening := strings.TrimSpace(p.OpeningLine); opening != "" {
		builder.WriteString("\n\nFrase de abertura de referência: ")
		builder.WriteString(opening)
	}

	builder.WriteString("\n\nMantenha este papel durante toda a conversa.")
	return builder.String()
}

func writeSection(builder *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	builder.WriteString("\n\n")
	builder.WriteString(title)
	for _, line := range lines {
		builder.WriteString("\n- ")
		builder.WriteString(line)
	}
}
