// Package kernelcache downloads SPK ephemeris kernels over HTTP, verifies
// them against a SHA-256 checksum, and caches them in a platform-appropriate
// directory so a kernel is fetched at most once per machine.
//
// This package is a thin collaborator at the repo's edge (spec.md §9): the
// core packages never import it, and it never imports them except through
// the plain []byte contract spk.Open already accepts.
package kernelcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultCacheDirName is the subdirectory created under the user's cache
// home (or viper's "cache.dir" override) to hold downloaded kernels.
const DefaultCacheDirName = "moonsight"

// defaultTimeout bounds a single kernel download.
const defaultTimeout = 2 * time.Minute

// Entry describes one kernel available for download.
type Entry struct {
	Name   string // e.g. "de442s.bsp", also used as the cache filename
	URL    string
	SHA256 string // lowercase hex digest, empty to skip verification
}

// CacheDir resolves the directory kernels are stored in: viper's
// "cache.dir" key if set (populated from a config file, env var, or flag by
// the caller), otherwise os.UserCacheDir()/moonsight.
func CacheDir() (string, error) {
	if dir := viper.GetString("cache.dir"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("kernelcache: resolving user cache dir: %w", err)
	}
	return filepath.Join(base, DefaultCacheDirName), nil
}

// Path returns the cache path an entry would be stored at, without
// touching the filesystem.
func Path(e Entry) (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, e.Name), nil
}

// Verified reports whether e is already present in the cache with a
// matching checksum (or present and e.SHA256 is empty, skipping the
// check).
func Verified(e Entry) (bool, error) {
	path, err := Path(e)
	if err != nil {
		return false, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("kernelcache: reading cached kernel: %w", err)
	}
	if e.SHA256 == "" {
		return true, nil
	}
	return checksum(buf) == e.SHA256, nil
}

// Fetch downloads e's URL, verifies its checksum (when e.SHA256 is set),
// writes it into the cache directory, and returns the cached path and the
// downloaded bytes. If a verified copy already exists in the cache, Fetch
// reads it from disk instead of downloading again.
func Fetch(e Entry) (path string, data []byte, err error) {
	path, err = Path(e)
	if err != nil {
		return "", nil, err
	}

	if ok, verr := Verified(e); verr == nil && ok {
		data, err = os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
	}

	client := &http.Client{Timeout: defaultTimeout}
	resp, err := client.Get(e.URL)
	if err != nil {
		return "", nil, fmt.Errorf("kernelcache: fetching %s: %w", e.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("kernelcache: fetching %s: unexpected status %s", e.URL, resp.Status)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("kernelcache: reading response body: %w", err)
	}

	if e.SHA256 != "" {
		if got := checksum(data); got != e.SHA256 {
			return "", nil, fmt.Errorf("kernelcache: checksum mismatch for %s: got %s, want %s", e.Name, got, e.SHA256)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", nil, fmt.Errorf("kernelcache: creating cache dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("kernelcache: writing cached kernel: %w", err)
	}

	return path, data, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
