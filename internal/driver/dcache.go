package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload changes shape;
// entries written under another version read as misses.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache maps (file content, expansion options) to a finished expansion.
// Only diagnostic-free expansions are stored. A nil *DiskCache is a cache
// that never hits.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached expansion, stored as msgpack.
type DiskPayload struct {
	Schema uint16 `msgpack:"schema"`
	Path   string `msgpack:"path"`
	Output []byte `msgpack:"output"`
	Sites  int    `msgpack:"sites"`
}

// OpenDiskCache opens the cache rooted at dir, creating the directory.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) entries() string { return filepath.Join(c.dir, "exp") }

// entryPath shards by the first key byte to keep directories small.
func (c *DiskCache) entryPath(key Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.entries(), name[:2], name+".mp")
}

// Put stores payload under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeFileAtomic(c.entryPath(key), data, 0o644)
}

// Get loads the entry for key into out. Missing and stale entries are
// misses, not errors.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry; the cache stays usable.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.entries())
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(perm); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
