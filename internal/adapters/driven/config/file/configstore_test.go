package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[storage]
backend = "filesystem"

[storage.filesystem]
root = "/var/lib/sapbatch"

[sink]
group_by_transaction = false
format = "parquet"

[server]
port = 8080

[sweep]
rate = 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigStore_ReadsNestedTables(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "filesystem", store.GetString("storage.backend"))
	assert.Equal(t, "/var/lib/sapbatch", store.GetString("storage.filesystem.root"))
	assert.False(t, store.GetBool("sink.group_by_transaction"))
	assert.Equal(t, "parquet", store.GetString("sink.format"))
	assert.Equal(t, 8080, store.GetInt("server.port"))
	assert.InDelta(t, 2.0, store.GetFloat("sweep.rate"), 1e-9)

	_, ok := store.Get("sink.group_by_transaction")
	assert.True(t, ok)
	_, ok = store.Get("sink.root")
	assert.False(t, ok)
}

func TestNewConfigStore_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, "", store.GetString("storage.backend"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sapbatch", "config.toml"), store.Path())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	_, err := NewConfigStore(writeConfig(t, "[storage\nbackend ="))
	assert.Error(t, err)
}

func TestConfigStore_SetPersistsNested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sapbatch", "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "s3"))
	require.NoError(t, store.Set("storage.s3.region", "ca-central-1"))
	require.NoError(t, store.Set("server.port", 9090))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "s3", reloaded.GetString("storage.backend"))
	assert.Equal(t, "ca-central-1", reloaded.GetString("storage.s3.region"))
	assert.Equal(t, 9090, reloaded.GetInt("server.port"))
}

func TestConfigStore_SetConflict(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "s3"))
	assert.Error(t, store.Set("storage.backend.kind", "x"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, "[sweep]\nrate = 0.5\nname = \"x\"\n"))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, store.GetFloat("sweep.rate"), 1e-9)
	assert.Equal(t, 0.0, store.GetFloat("sweep.name"))
	assert.Equal(t, 0.0, store.GetFloat("sweep.missing"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("server.port", n)
			_ = store.GetInt("server.port")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("server.port")
	assert.True(t, ok)
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{
			"backend": "azure",
			"azure":   map[string]any{"connection_string": "x"},
		},
	}
	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"storage.backend":                 "azure",
		"storage.azure.connection_string": "x",
	}, flat)

	back, err := nestMap(flat)
	require.NoError(t, err)
	assert.Equal(t, nested, back)
}
