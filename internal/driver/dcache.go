package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

// Current schema version - increment when CachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит объекты успешно собранных пакетов скриптов на диске,
// ключ: BatchKey. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the cached outcome of one error-free batch.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	FilePaths []string
	Objects   []Object
	Created   time.Time
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// BatchKey hashes everything a batch's objects depend on: the environment
// digest, every input path and content, and the options that change output.
// Inputs are keyed in path order, so argument order does not matter.
func BatchKey(env *project.Environment, inputs []Input, opts Options) project.Digest {
	sorted := slices.Clone(inputs)
	slices.SortFunc(sorted, func(a, b Input) int { return strings.Compare(a.Path, b.Path) })

	deps := make([]project.Digest, 0, len(sorted)+1)
	var flags [3]byte
	flags[0] = byte(opts.Encoding)
	if opts.Optimize {
		flags[1] = 1
	}
	if opts.AllowOverride {
		flags[2] = 1
	}
	deps = append(deps, sha256.Sum256(flags[:]))
	for _, in := range sorted {
		h := sha256.New()
		_, _ = h.Write([]byte(in.Path))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(in.Content)
		var d project.Digest
		copy(d[:], h.Sum(nil))
		deps = append(deps, d)
	}
	var digest project.Digest
	if env != nil {
		digest = env.Digest
	}
	return project.Combine(digest, deps...)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "batches", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	if payload.Created.IsZero() {
		payload.Created = time.Now()
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A missing entry or one written by
// another schema is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Dir is the cache root.
func (c *DiskCache) Dir() string { return c.dir }
