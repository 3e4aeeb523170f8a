package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/israil64/laptop-galaxy/internal/models"
)

func TestFileStoreContract(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, store)
}

func TestFileStorePreservesInsertionOrder(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, model := range []string{"XPS", "ThinkPad", "MacBook"} {
		_, err := store.Laptops().Create(ctx, models.Laptop{Model: model})
		require.NoError(t, err)
	}

	laptops, err := store.Laptops().List(ctx)
	require.NoError(t, err)
	require.Len(t, laptops, 3)
	require.Equal(t, "XPS", laptops[0].Model)
	require.Equal(t, "ThinkPad", laptops[1].Model)
	require.Equal(t, "MacBook", laptops[2].Model)
}

func TestFileStoreWritesPrettyPrintedJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Laptops().Create(context.Background(), models.Laptop{Model: "XPS"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  ", "collection files are pretty-printed")

	var recs []models.Laptop
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 1)
}

func TestFileStoreFailsOpenOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.json"), []byte("{not json"), 0o644))

	laptops, err := store.Laptops().List(context.Background())
	require.NoError(t, err)
	require.Empty(t, laptops, "an unreadable store serves an empty catalog")
}

func TestFileStoreTimestampIDsAreMonotonic(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	prev := ""
	for i := 0; i < 10; i++ {
		created, err := store.Laptops().Create(ctx, models.Laptop{Model: "x"})
		require.NoError(t, err)
		if prev != "" {
			require.Greater(t, created.ID, prev)
		}
		prev = created.ID
	}
}
