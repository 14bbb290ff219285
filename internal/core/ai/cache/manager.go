package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager caches analysis results keyed by image content hash. The backend
// is in-memory by default; a Redis backend can be selected via config and
// falls back to memory when Redis is unreachable.
type Manager struct {
	config  *config.Config
	backend backend
}

// backend is a key/value store with TTL semantics.
type backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewManager creates a cache manager, or nil when caching is disabled.
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	var be backend
	if cfg.Cache.Backend == "redis" {
		redisBackend, err := newRedisBackend(&cfg.Cache)
		if err != nil {
			common.LogWarn("Redis cache unavailable, falling back to memory",
				zap.Error(err),
				zap.String("addr", cfg.Cache.RedisAddr),
			)
		} else {
			be = redisBackend
		}
	}
	if be == nil {
		be = newMemoryBackend(&cfg.Cache)
	}

	common.LogInfo("Cache manager initialized",
		zap.String("backend", cfg.Cache.Backend),
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &Manager{
		config:  cfg,
		backend: be,
	}
}

// HashKey derives a cache key from raw content bytes.
func HashKey(data []byte) string {
	hash := sha256.Sum256(data)
	return "analysis:" + hex.EncodeToString(hash[:])
}

// Get returns the cached value for key, or an error on miss.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	value, err := m.backend.Get(ctx, key)
	if err != nil {
		common.LogDebug("Cache miss", zap.String("key", key))
		return "", err
	}
	common.LogDebug("Cache hit", zap.String("key", key))
	return value, nil
}

// Set stores value under key. Failures are returned but callers treat them
// as non-fatal.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	return m.backend.Set(ctx, key, value)
}

// Close shuts down the backend.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return m.backend.Close()
}

// memoryBackend is an in-process TTL map with LRU eviction.
type memoryBackend struct {
	cfg   *config.CacheConfig
	mu    sync.RWMutex
	store map[string]memoryEntry
	done  chan struct{}

	hits      int64
	misses    int64
	evictions int64
}

type memoryEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

func newMemoryBackend(cfg *config.CacheConfig) *memoryBackend {
	b := &memoryBackend{
		cfg:   cfg,
		store: make(map[string]memoryEntry),
		done:  make(chan struct{}),
	}
	go b.startCleanup()
	return b
}

func (b *memoryBackend) Get(ctx context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.store[key]
	if !exists {
		b.misses++
		return "", common.ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		delete(b.store, key)
		b.evictions++
		b.misses++
		return "", common.ErrCacheMiss
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	b.store[key] = entry
	b.hits++
	return entry.value, nil
}

func (b *memoryBackend) Set(ctx context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.store) >= b.cfg.MaxSize {
		if evicted := b.cleanup(); evicted == 0 {
			b.evictLRU()
		}
		if len(b.store) >= b.cfg.MaxSize {
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	b.store[key] = memoryEntry{
		value:      value,
		expiresAt:  now.Add(b.cfg.TTL),
		lastAccess: now,
	}
	return nil
}

func (b *memoryBackend) Close() error {
	close(b.done)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store = make(map[string]memoryEntry)
	common.LogInfo("Memory cache closed",
		zap.Int64("hits", b.hits),
		zap.Int64("misses", b.misses),
		zap.Int64("evictions", b.evictions),
	)
	return nil
}

func (b *memoryBackend) startCleanup() {
	ticker := time.NewTicker(b.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.mu.Lock()
			b.cleanup()
			b.mu.Unlock()
		case <-b.done:
			return
		}
	}
}

// cleanup removes expired entries. Caller must hold the lock.
func (b *memoryBackend) cleanup() int {
	now := time.Now()
	count := 0
	for key, entry := range b.store {
		if now.After(entry.expiresAt) {
			delete(b.store, key)
			count++
			b.evictions++
		}
	}
	return count
}

// evictLRU removes the least-used entry. Caller must hold the lock.
func (b *memoryBackend) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestCount int

	for key, entry := range b.store {
		if oldestKey == "" ||
			entry.accessCount < lowestCount ||
			(entry.accessCount == lowestCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(b.store, oldestKey)
		b.evictions++
	}
}
