package audit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usecase-assistant/pkg/requestcontext"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	require.NoError(t, p.Emit(ctx, Event{Action: EventUseCaseCreated, UseCaseID: "uc-1"}))

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestStores(t *testing.T) {
	journal, err := NewJournalStore(filepath.Join(t.TempDir(), "nested", "audit.jsonl"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory":  NewInMemoryStore(),
		"journal": journal,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := NewPublisher(store)

			empty, err := p.List(ctx, "uc-1")
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, p.Emit(ctx, Event{Action: EventUseCaseCreated, UseCaseID: "uc-1", Title: "Purchase Items"}))
			require.NoError(t, p.Emit(ctx, Event{Action: EventUseCaseCreated, UseCaseID: "uc-2"}))
			require.NoError(t, p.Emit(ctx, Event{Action: EventUseCaseDeleted, UseCaseID: "uc-1"}))

			events, err := p.List(ctx, "uc-1")
			require.NoError(t, err)
			require.Len(t, events, 2)
			assert.Equal(t, EventUseCaseCreated, events[0].Action)
			assert.Equal(t, "Purchase Items", events[0].Title)
			assert.Equal(t, EventUseCaseDeleted, events[1].Action)
			assert.False(t, events[1].Timestamp.IsZero())
		})
	}
}

func TestJournalStoreRejectsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"action\":\"usecase_created\",\"useCaseId\":\"a\"}\nnot-json\n"), 0o644))

	store, err := NewJournalStore(path)
	require.NoError(t, err)

	_, err = store.ListByUseCase(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestJournalStoreLongTitle(t *testing.T) {
	store, err := NewJournalStore(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	ctx := context.Background()
	title := strings.Repeat("Purchase Items ", 20_000)

	require.NoError(t, store.Append(ctx, Event{Action: EventUseCaseCreated, UseCaseID: "uc-1", Title: title}))
	require.NoError(t, store.Append(ctx, Event{Action: EventUseCaseDeleted, UseCaseID: "uc-1"}))

	events, err := store.ListByUseCase(ctx, "uc-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, title, events[0].Title)
}
