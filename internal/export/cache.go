// Package export turns resume documents into downloadable PDF, PNG, and ZIP
// artifacts, memoizing finished files by content fingerprint.
package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache memoizes finished artifact paths by fingerprint. Implementations
// must be safe for concurrent use; the exporter guarantees at most one
// factory invocation per distinct fingerprint within the cache's lifetime.
type Cache interface {
	Get(fingerprint string) (string, bool)
	Set(fingerprint, path string)
	Clear()
}

// MemoryCache is a process-memory Cache. Entries survive until Clear or
// process exit; they are not persisted across restarts. maxEntries == 0
// means unbounded growth (the original behavior); a positive cap evicts the
// oldest entry first.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]string
	order      []string
	maxEntries int
}

// NewMemoryCache creates a cache with an optional entry cap.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]string),
		maxEntries: maxEntries,
	}
}

// Get returns the artifact path stored for fingerprint.
func (c *MemoryCache) Get(fingerprint string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	path, ok := c.entries[fingerprint]
	return path, ok
}

// Set stores an artifact path, evicting the oldest entry when the cap is
// exceeded.
func (c *MemoryCache) Set(fingerprint, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[fingerprint]; !exists {
		c.order = append(c.order, fingerprint)
	}
	c.entries[fingerprint] = path
	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
	c.order = nil
}

// Len returns the number of cached artifacts.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fingerprint derives the cache key for an export request from the resume's
// content version (its update timestamp) and the full options set. Identical
// requests hash identically; any option or content change produces a new key.
func Fingerprint(contentVersion time.Time, opts *Options) string {
	payload, _ := json.Marshal(struct {
		Version int64    `json:"version"`
		Options *Options `json:"options"`
	}{
		Version: contentVersion.UnixNano(),
		Options: opts,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// artifactName builds the single-export file name resume-<id>-<epochMillis>.<ext>.
func artifactName(id string, ext string, now time.Time) string {
	return fmt.Sprintf("resume-%s-%d.%s", id, now.UnixMilli(), ext)
}

// archiveName builds the bulk-export file name resumes-<epochMillis>.zip.
func archiveName(now time.Time) string {
	return fmt.Sprintf("resumes-%d.zip", now.UnixMilli())
}
