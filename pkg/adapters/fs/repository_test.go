package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mininotes/pkg/core"
)

type record struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func setupRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data", "notes")
	return NewRepository(Config{Path: dataDir}), root
}

func TestRepository_EnsureDirectory(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.EnsureDirectory(ctx))
	require.NoError(t, repo.EnsureDirectory(ctx), "second call must be a no-op")

	info, err := os.Stat(repo.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRepository_WriteAndRead(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a", Value: "x"}))

	var got record
	require.NoError(t, repo.ReadRecord(ctx, "a.json", &got))
	assert.Equal(t, record{ID: "a", Value: "x"}, got)

	raw, err := os.ReadFile(filepath.Join(repo.Path, "a.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"id\": \"a\"", "records are stored as indented JSON")
}

func TestRepository_ListFiles(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a"}))
	require.NoError(t, repo.WriteRecord(ctx, "b.json", record{ID: "b"}))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "c.json.123.tmp"), []byte("{"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(repo.Path, "dir.json"), 0755))

	files, err := repo.ListFiles(ctx, ".json")
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{"a.json", "b.json"}, files)
}

func TestRepository_ListFiles_CreatesDirectory(t *testing.T) {
	repo, _ := setupRepo(t)

	files, err := repo.ListFiles(context.Background(), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = os.Stat(repo.Path)
	assert.NoError(t, err)
}

func TestRepository_ReadFailsClosed(t *testing.T) {
	var corrupt []string
	root := t.TempDir()
	repo := NewRepository(Config{
		Path: root,
		CorruptionHandler: func(name string, err error) {
			corrupt = append(corrupt, name)
		},
	})
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(root, "plain.txt"), []byte(`{"id":"x"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.json"), []byte(`{"id": "ab`), 0644))

	var got record
	assert.ErrorIs(t, repo.ReadRecord(ctx, "plain.txt", &got), core.ErrNotFound, "wrong extension")
	assert.ErrorIs(t, repo.ReadRecord(ctx, "missing.json", &got), core.ErrNotFound, "absent file")
	assert.ErrorIs(t, repo.ReadRecord(ctx, "broken.json", &got), core.ErrNotFound, "malformed file")

	assert.Equal(t, []string{"broken.json"}, corrupt, "only the corrupt file reaches the diagnostic hook")
}

func TestRepository_WriteRejectsInvalidName(t *testing.T) {
	repo, _ := setupRepo(t)

	err := repo.WriteRecord(context.Background(), "a.txt", record{ID: "a"})
	require.ErrorIs(t, err, ErrInvalidName)

	_, statErr := os.Stat(filepath.Join(repo.Path, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRepository_PathConfinement(t *testing.T) {
	repo, root := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureDirectory(ctx))

	// Sentinel outside the data directory.
	outside := filepath.Join(root, "outside")
	require.NoError(t, os.MkdirAll(outside, 0755))
	sentinel := filepath.Join(outside, "secret.json")
	require.NoError(t, os.WriteFile(sentinel, []byte(`{"id":"secret","value":"leak"}`), 0644))

	rel, err := filepath.Rel(repo.Path, sentinel)
	require.NoError(t, err)

	var got record
	assert.ErrorIs(t, repo.ReadRecord(ctx, rel, &got), core.ErrNotFound)
	assert.ErrorIs(t, repo.ReadRecord(ctx, sentinel, &got), core.ErrNotFound, "absolute paths are confined too")
	assert.Empty(t, got.Value)

	assert.False(t, repo.DeleteRecord(ctx, rel))
	_, err = os.Stat(sentinel)
	assert.NoError(t, err, "sentinel must survive delete attempts")

	// Writes land inside the data directory under the base name.
	require.NoError(t, repo.WriteRecord(ctx, "../../outside/evil.json", record{ID: "evil"}))
	_, err = os.Stat(filepath.Join(outside, "evil.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(repo.Path, "evil.json"))
	assert.NoError(t, err)
}

func TestRepository_DeleteRecord(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a"}))

	assert.True(t, repo.DeleteRecord(ctx, "a.json"))
	assert.False(t, repo.DeleteRecord(ctx, "a.json"), "already absent")
	assert.False(t, repo.DeleteRecord(ctx, "a.txt"), "wrong extension")

	var got record
	assert.ErrorIs(t, repo.ReadRecord(ctx, "a.json", &got), core.ErrNotFound)
}

func TestRepository_DirectorySizeBytes(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	size, err := repo.DirectorySizeBytes(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a", Value: "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}))
	require.NoError(t, repo.WriteRecord(ctx, "b.json", record{ID: "b"}))

	infoA, err := os.Stat(filepath.Join(repo.Path, "a.json"))
	require.NoError(t, err)
	infoB, err := os.Stat(filepath.Join(repo.Path, "b.json"))
	require.NoError(t, err)

	size, err = repo.DirectorySizeBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, infoA.Size()+infoB.Size(), size)

	// A file vanishing between list and stat is skipped, not fatal.
	repo.fsys = &faultFS{statErr: map[string]error{"a.json": os.ErrNotExist}}
	size, err = repo.DirectorySizeBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, infoB.Size(), size)
}

func TestRepository_InterruptedWrite(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteRecord(ctx, "n.json", record{ID: "n", Value: "before"}))

	// A crash between temp write and rename leaves a truncated orphan.
	orphan := filepath.Join(repo.Path, "n.json.829104.tmp")
	require.NoError(t, os.WriteFile(orphan, []byte(`{"id": "n", "val`), 0644))

	var got record
	require.NoError(t, repo.ReadRecord(ctx, "n.json", &got))
	assert.Equal(t, "before", got.Value)

	files, err := repo.ListFiles(ctx, ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"n.json"}, files)

	// A rename failure also leaves the previous content in place.
	repo.fsys = &faultFS{renameErr: os.ErrPermission}
	require.Error(t, repo.WriteRecord(ctx, "n.json", record{ID: "n", Value: "after"}))
	repo.fsys = osFS{}

	require.NoError(t, repo.ReadRecord(ctx, "n.json", &got))
	assert.Equal(t, "before", got.Value)

	// A fresh record that never got renamed stays absent.
	repo.fsys = &faultFS{renameErr: os.ErrPermission}
	require.Error(t, repo.WriteRecord(ctx, "fresh.json", record{ID: "fresh"}))
	repo.fsys = osFS{}
	assert.ErrorIs(t, repo.ReadRecord(ctx, "fresh.json", &got), core.ErrNotFound)
}

func TestRepository_SweepTemp(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.WriteRecord(ctx, "a.json", record{ID: "a"}))

	orphan := filepath.Join(repo.Path, "a.json.5551.tmp")
	require.NoError(t, os.WriteFile(orphan, []byte("{"), 0644))
	unrelated := filepath.Join(repo.Path, "scratch.tmp")
	require.NoError(t, os.WriteFile(unrelated, []byte("x"), 0644))

	removed, err := repo.SweepTemp(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed, "fresh temp files are within the grace period")

	removed, err = repo.SweepTemp(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(orphan)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(unrelated)
	assert.NoError(t, err, "only record temp files are swept")

	state := repo.State().(RepositoryState)
	assert.NotNil(t, state.LastSweep)
}
