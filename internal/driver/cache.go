package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the payload format or rendering semantics change; stale entries
// then miss instead of replaying old output.
const cacheSchemaVersion uint16 = 1

// cachePayload is the serialized cache entry for one clean conversion.
type cachePayload struct {
	Schema uint16
	Target string
	Output string
}

// DiskCache replays previous clean conversions keyed by content hash and
// target. Safe for concurrent use by directory workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// NewDiskCache roots a cache at dir; an empty dir falls back next to the
// user cache directory.
func NewDiskCache(dir string) *DiskCache {
	if dir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			dir = filepath.Join(base, "glot")
		} else {
			dir = filepath.Join(os.TempDir(), "glot-cache")
		}
	}
	return &DiskCache{dir: dir}
}

func (c *DiskCache) entryPath(contentHash [32]byte, target string) string {
	sum := sha256.New()
	sum.Write(contentHash[:])
	sum.Write([]byte(target))
	key := hex.EncodeToString(sum.Sum(nil))
	return filepath.Join(c.dir, key[:2], key+".msgpack")
}

// Get returns the cached output for the hash/target pair.
func (c *DiskCache) Get(contentHash [32]byte, target string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.entryPath(contentHash, target))
	if err != nil {
		return "", false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return "", false
	}
	if payload.Schema != cacheSchemaVersion || payload.Target != target {
		return "", false
	}
	return payload.Output, true
}

// Put stores a clean conversion. Failures are swallowed: the cache is an
// optimization, never a correctness dependency.
func (c *DiskCache) Put(contentHash [32]byte, target, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.entryPath(contentHash, target)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	raw, err := msgpack.Marshal(cachePayload{
		Schema: cacheSchemaVersion,
		Target: target,
		Output: output,
	})
	if err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}
