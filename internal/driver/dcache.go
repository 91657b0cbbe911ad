package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"plume/internal/format"
)

// Digest is a SHA-256 value over file content and formatting options.
type Digest [32]byte

// Current schema version. Increment when FormatPayload changes shape or the
// canonical output style changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores formatted output keyed by content digest so unchanged
// files skip the parse/attach/print pipeline on repeat runs.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// FormatPayload is the cached result of formatting one file.
type FormatPayload struct {
	Schema uint16

	// ContentHash is the digest of the input the output was produced from.
	ContentHash Digest

	// Changed records whether the formatted output differs from the input.
	Changed   bool
	Formatted []byte
}

// OpenDiskCache initializes a disk cache at dir, or at the standard
// XDG cache location for app when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root readable and easy to clear.
	return filepath.Join(c.dir, "fmt", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
// The write is atomic: a temp file is renamed over the target.
func (c *DiskCache) Put(key Digest, payload *FormatPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload from the disk cache. A missing entry or a payload
// with a stale schema reports (false, nil).
func (c *DiskCache) Get(key Digest, out *FormatPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the content hash with the formatting options so a style
// change never serves stale output: H(content || options).
func cacheKey(contentHash [32]byte, opt format.Options) Digest {
	h := sha256.New()
	_, _ = h.Write(contentHash[:])
	fmt.Fprintf(h, "indent=%d tabs=%t schema=%d", opt.IndentWidth, opt.UseTabs, diskCacheSchemaVersion)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
