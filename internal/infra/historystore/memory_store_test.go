package historystore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/article-summarizer/internal/domain/history"
)

func entry(id int) history.Entry {
	return history.Entry{ID: fmt.Sprintf("e%d", id)}
}

func ids(entries []history.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestMemoryStoreNewestFirst(t *testing.T) {
	store := NewMemoryStore(5)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Add(ctx, entry(i)))
	}

	got, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"e3", "e2", "e1"}, ids(got))

	got, err = store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"e3", "e2"}, ids(got))
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()
	for i := 1; i <= 7; i++ {
		require.NoError(t, store.Add(ctx, entry(i)))
	}

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"e7", "e6", "e5"}, ids(got))
}

func TestMemoryStoreEmpty(t *testing.T) {
	store := NewMemoryStore(0)
	require.Equal(t, history.DefaultCapacity, store.Capacity())

	got, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(16)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Add(ctx, entry(i))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Recent(ctx, 4)
		}()
	}
	wg.Wait()

	got, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 16)
}
