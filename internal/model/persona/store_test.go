package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByID("startup-mentor")
	require.True(t, ok)
	assert.Equal(t, "Rafael", p.Name)

	p, ok = store.FindByID("  investor-scout ")
	require.True(t, ok)
	assert.Equal(t, "Helena", p.Name)

	_, ok = store.FindByID("")
	assert.False(t, ok)
	_, ok = store.FindByID("nobody")
	assert.False(t, ok)
}

func TestMemoryStoreKeepsOrderAndFirstDuplicate(t *testing.T) {
	store := NewMemoryStore([]Persona{
		{ID: "b", Name: "Bruno"},
		{ID: "a", Name: "Ana"},
		{ID: "b", Name: "Outro Bruno"},
	})

	require.Equal(t, 2, store.Len())
	list := store.List()
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	p, _ := store.FindByID("b")
	assert.Equal(t, "Bruno", p.Name)

	// List returns a copy
	list[0].Name = "alterado"
	p, _ = store.FindByID("b")
	assert.Equal(t, "Bruno", p.Name)
}

func TestLoadStore(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)
	assert.Equal(t, len(Seed()), store.Len())

	path := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personas:\n  - id: guia\n    name: Guia\n"), 0o600))
	store, err = LoadStore(path)
	require.NoError(t, err)
	_, ok := store.FindByID("guia")
	assert.True(t, ok)

	_, err = LoadStore(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
