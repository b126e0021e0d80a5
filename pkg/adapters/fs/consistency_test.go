package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mininotes/pkg/core"
)

// TestExternalEditsAreVisible verifies that the repository holds no copy of
// the data: changes made behind its back show up on the next call.
func TestExternalEditsAreVisible(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a", Value: "v1"}))

	path := filepath.Join(repo.Path, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"a","value":"edited"}`), 0644))

	var got record
	require.NoError(t, repo.ReadRecord(ctx, "a.json", &got))
	assert.Equal(t, "edited", got.Value)

	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "b.json"), []byte(`{"id":"b"}`), 0644))
	files, err := repo.ListFiles(ctx, ".json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.json", "b.json"}, files)

	require.NoError(t, os.Remove(path))
	assert.ErrorIs(t, repo.ReadRecord(ctx, "a.json", &got), core.ErrNotFound)
	assert.False(t, repo.DeleteRecord(ctx, "a.json"))
}
