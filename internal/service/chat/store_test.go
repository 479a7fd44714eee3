package chat

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	sqliteStore, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "nested", "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStoreUpsertAndFind(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := store.Find(ctx, "s-1")
			require.NoError(t, err)
			assert.False(t, found)

			created, err := store.Upsert(ctx, chat.Session{
				ID:      "s-1",
				AgentID: "guide",
				Turns:   []chat.Turn{chat.UserTurn("persona"), chat.ModelTurn("ok")},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), created.Version)
			assert.False(t, created.CreatedAt.IsZero())

			got, found, err := store.Find(ctx, "s-1")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "guide", got.AgentID)
			assert.Equal(t, created.Turns, got.Turns)
			assert.Equal(t, int64(1), got.Version)

			got.Turns = append(got.Turns, chat.UserTurn("oi"), chat.ModelTurn("olá"))
			updated, err := store.Upsert(ctx, got)
			require.NoError(t, err)
			assert.Equal(t, int64(2), updated.Version)
			assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

			reloaded, _, err := store.Find(ctx, "s-1")
			require.NoError(t, err)
			assert.Len(t, reloaded.Turns, 4)
		})
	}
}

func TestStoreDetectsVersionConflict(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := chat.Session{ID: "s-2", AgentID: "guide", Turns: []chat.Turn{chat.UserTurn("p"), chat.ModelTurn("a")}}
			_, err := store.Upsert(ctx, base)
			require.NoError(t, err)

			// a second writer that also believes the session is new
			_, err = store.Upsert(ctx, base)
			assert.ErrorIs(t, err, ErrVersionConflict)

			first, _, _ := store.Find(ctx, "s-2")
			second, _, _ := store.Find(ctx, "s-2")

			first.Turns = append(first.Turns, chat.UserTurn("x"), chat.ModelTurn("y"))
			_, err = store.Upsert(ctx, first)
			require.NoError(t, err)

			second.Turns = append(second.Turns, chat.UserTurn("z"), chat.ModelTurn("w"))
			_, err = store.Upsert(ctx, second)
			assert.ErrorIs(t, err, ErrVersionConflict)

			final, _, _ := store.Find(ctx, "s-2")
			assert.Equal(t, "x", final.Turns[2].Text)
		})
	}
}

func TestStoreRejectsEmptyID(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Upsert(context.Background(), chat.Session{})
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestMemoryStoreFindReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_, err := store.Upsert(ctx, chat.Session{ID: "s-3", Turns: []chat.Turn{chat.UserTurn("a")}})
	require.NoError(t, err)

	got, _, _ := store.Find(ctx, "s-3")
	got.Turns[0].Text = "mutated"

	again, _, _ := store.Find(ctx, "s-3")
	assert.Equal(t, "a", again.Turns[0].Text)
}
