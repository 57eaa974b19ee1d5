package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/declgen/doctree"
)

// treeInput represents the two ways a doc tree can be provided to a tool.
// Exactly one of File or Content must be set.
type treeInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a doc tree file on disk (JSON or YAML)"`
	Content string `json:"content,omitempty" jsonschema:"Inline doc tree content (JSON or YAML)"`
}

func (s treeInput) isSet() bool {
	return s.File != "" || s.Content != ""
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *doctree.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// treeCacheStore provides a session-scoped cache for loaded doc trees.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Module maps and single trees are cached separately.
type treeCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var treeCache = &treeCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *treeCacheStore) get(key string) *doctree.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *treeCacheStore) putWithTTL(key string, result *doctree.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *treeCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *treeCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *treeCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *treeCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given tree input.
func makeCacheKey(s treeInput, moduleMap bool) string {
	kind := "tree"
	if moduleMap {
		kind = "modules"
	}
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("%s:file:%s:%d", kind, absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("%s:content:%s", kind, hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve loads the doc tree from whichever input was provided, using the
// cache for both input modes. moduleMap loads an object of module key to
// doc tree instead of a single tree.
func (s treeInput) resolve(moduleMap bool) (*doctree.ParseResult, error) {
	if (s.File != "") == (s.Content != "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set DECLGEN_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, moduleMap)
		ttl = cfg.CacheContentTTL
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}

	if key != "" {
		if cached := treeCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []doctree.Option{doctree.WithModuleMap(moduleMap)}
	if s.File != "" {
		opts = append(opts, doctree.WithFilePath(s.File))
	} else {
		opts = append(opts, doctree.WithReader(strings.NewReader(s.Content)))
	}

	result, err := doctree.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		treeCache.putWithTTL(key, result, ttl)
	}
	return result, nil
}

// resolveOptional loads a single doc tree, or returns nil if no input was set.
func (s treeInput) resolveOptional() (*doctree.Node, error) {
	if !s.isSet() {
		return nil, nil
	}
	result, err := s.resolve(false)
	if err != nil {
		return nil, err
	}
	return result.Root, nil
}
