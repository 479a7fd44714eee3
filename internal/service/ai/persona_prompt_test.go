package ai

import (
	"strings"
	"testing"

	"github.com/uberhub/innovation-hub/backend/internal/model/persona"
)

func TestBuildPersonaPromptUsesPromptAndRules(t *testing.T) {
	p := persona.Persona{
		ID:     "guide",
		Name:   "Lia",
		Title:  "Guia",
		Prompt: "Você é Lia.",
		Traits: []string{"paciente", "curiosa"},
		Rules:  []string{"Responda em português"},
	}

	got := BuildPersonaPrompt(p)

	if !strings.HasPrefix(got, "Você é Lia.") {
		t.Fatalf("prompt should start with persona prompt, got %q", got)
	}
	for _, want := range []string{"Traços: paciente, curiosa", "Regras da conversa:\n- Responda em português"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, got)
		}
	}
}

func TestBuildPersonaPromptFallsBackToNameAndTitle(t *testing.T) {
	got := BuildPersonaPrompt(persona.Persona{ID: "x", Name: "Rafael", Title: "mentor"})

	if !strings.HasPrefix(got, "Você é Rafael, mentor.") {
		t.Fatalf("unexpected fallback intro: %q", got)
	}
	if strings.Contains(got, "Regras da conversa") {
		t.Fatalf("empty rules section should be omitted: %q", got)
	}
}
