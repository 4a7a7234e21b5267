package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animerelay/pkg/config"
	"animerelay/pkg/logger"
)

func newTestStore(t *testing.T) (*Store, *config.DedupConfig) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.DedupConfig{
		PostedIDsFile:     filepath.Join(dir, "posted_tweets.json"),
		PostedContentFile: filepath.Join(dir, "posted_content.json"),
	}
	return NewStore(cfg, logger.NewNop()), cfg
}

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	ids, fingerprints, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, ids.Len())
	assert.Equal(t, 0, fingerprints.Len())
}

func TestSaveThenFreshLoadRoundTrips(t *testing.T) {
	store, cfg := newTestStore(t)

	require.NoError(t, store.Save("111", "hash-a"))
	require.NoError(t, store.Save("222", "hash-b"))

	// A brand new store over the same files sees the full record
	fresh := NewStore(cfg, logger.NewNop())
	ids, fingerprints, err := fresh.Load()
	require.NoError(t, err)

	assert.True(t, ids.Contains("111"))
	assert.True(t, ids.Contains("222"))
	assert.True(t, fingerprints.Contains("hash-a"))
	assert.True(t, fingerprints.Contains("hash-b"))
	assert.Equal(t, 2, ids.Len())
	assert.Equal(t, 2, fingerprints.Len())
}

func TestSavePreservesPreExistingEntries(t *testing.T) {
	store, cfg := newTestStore(t)

	// Seed state written by an earlier run
	require.NoError(t, os.WriteFile(cfg.PostedIDsFile, []byte(`["old-id"]`), 0644))
	require.NoError(t, os.WriteFile(cfg.PostedContentFile, []byte(`["old-hash"]`), 0644))

	require.NoError(t, store.Save("new-id", "new-hash"))

	ids, fingerprints, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ids.Contains("old-id"))
	assert.True(t, ids.Contains("new-id"))
	assert.True(t, fingerprints.Contains("old-hash"))
	assert.True(t, fingerprints.Contains("new-hash"))
}

func TestLoadCorruptFileFailsSoft(t *testing.T) {
	store, cfg := newTestStore(t)

	require.NoError(t, os.WriteFile(cfg.PostedIDsFile, []byte("{not json"), 0644))

	ids, fingerprints, err := store.Load()
	assert.Error(t, err)
	// The sets are still usable so the run can continue
	require.NotNil(t, ids)
	require.NotNil(t, fingerprints)
	assert.Equal(t, 0, ids.Len())
}

func TestSaveWritesFlatJSONArrays(t *testing.T) {
	store, cfg := newTestStore(t)

	require.NoError(t, store.Save("123", "abc"))

	data, err := os.ReadFile(cfg.PostedIDsFile)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal(data, &ids))
	assert.Equal(t, []string{"123"}, ids)

	// No temp file is left behind after the atomic replace
	_, err = os.Stat(cfg.PostedIDsFile + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSetValuesAreSorted(t *testing.T) {
	s := NewSet("b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())
}
