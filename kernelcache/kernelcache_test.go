package kernelcache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Set("cache.dir", dir)
	t.Cleanup(func() { viper.Set("cache.dir", "") })
	return dir
}

func TestCacheDirUsesViperOverride(t *testing.T) {
	dir := withCacheDir(t)
	got, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFetchDownloadsVerifiesAndCaches(t *testing.T) {
	withCacheDir(t)
	const body = "fake-kernel-bytes"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	e := Entry{Name: "test.bsp", URL: srv.URL, SHA256: checksum([]byte(body))}

	path, data, err := Fetch(e)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(onDisk))

	ok, err := Verified(e)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFetchRejectsChecksumMismatch(t *testing.T) {
	withCacheDir(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("actual-bytes"))
	}))
	defer srv.Close()

	e := Entry{Name: "bad.bsp", URL: srv.URL, SHA256: "0000000000000000000000000000000000000000000000000000000000000000"}

	_, _, err := Fetch(e)
	assert.Error(t, err)

	path, perr := Path(e)
	require.NoError(t, perr)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchReusesCachedCopyWithoutRefetching(t *testing.T) {
	withCacheDir(t)
	calls := 0
	const body = "cached-bytes"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(body))
	}))
	defer srv.Close()

	e := Entry{Name: "cached.bsp", URL: srv.URL, SHA256: checksum([]byte(body))}

	_, _, err := Fetch(e)
	require.NoError(t, err)
	_, _, err = Fetch(e)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestVerifiedFalseWhenAbsent(t *testing.T) {
	withCacheDir(t)
	e := Entry{Name: "missing.bsp", URL: "http://example.invalid/missing.bsp", SHA256: "deadbeef"}

	ok, err := Verified(e)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPathJoinsCacheDirAndName(t *testing.T) {
	dir := withCacheDir(t)
	e := Entry{Name: "de442s.bsp"}

	path, err := Path(e)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "de442s.bsp"), path)
}
