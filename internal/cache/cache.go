package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rgehrsitz/ngtax/internal/domain"
)

// Cache stores serialized comparison results keyed by input hash
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Key derives a stable cache key from inputs. Inputs are normalized first so
// that a negative amount and zero hash the same, matching what the engine
// would compute.
func Key(in domain.TaxInputs) string {
	normalized, _ := in.Normalize()

	var b strings.Builder
	for _, f := range normalized.Fields() {
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(f.Value.String())
		b.WriteByte(';')
	}

	return fmt.Sprintf("ngtax:cmp:%016x", xxhash.Sum64String(b.String()))
}

// RulesTag fingerprints a rule set so that results computed under
// different rules never share a cache entry.
func RulesTag(rules domain.TaxRules) string {
	data, err := json.Marshal(rules)
	if err != nil {
		return "norules"
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

type memoryEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

// MemoryCache is an in-process Cache. Safe for concurrent use.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Len reports the number of stored entries, expired or not
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
