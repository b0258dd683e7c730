// internal/settings/store.go
package settings

import (
	"context"
	"time"

	"turbo-admin/pkg/models"

	"gorm.io/gorm"
)

// DefaultTTL bounds how long a loaded configuration may be served from cache
// without re-reading the store.
const DefaultTTL = 5 * time.Minute

// Ptr constrains the pointer type of a singleton configuration record.
type Ptr[T any] interface {
	*T
	models.Singleton
}

// Store persists a singleton configuration record under the fixed key and
// keeps the last-loaded copy in a shared TTL cache. Invalidation on Save and
// Delete is explicit and unconditional, so within one process a read right
// after a write never observes the pre-write value.
type Store[T any, PT Ptr[T]] struct {
	db    *gorm.DB
	cache Cache
	ttl   time.Duration
	key   string
}

func NewStore[T any, PT Ptr[T]](db *gorm.DB, cache Cache) *Store[T, PT] {
	var zero T
	return &Store[T, PT]{
		db:    db,
		cache: cache,
		ttl:   DefaultTTL,
		key:   PT(&zero).SingletonName() + "_singleton",
	}
}

// CacheKey returns the cache key this store reads and evicts.
func (s *Store[T, PT]) CacheKey() string { return s.key }

// Load returns the unique record, creating a default-valued row if absent.
// An unexpired cached copy is served without touching the store.
func (s *Store[T, PT]) Load(ctx context.Context) (*T, error) {
	if v, ok := s.cache.Get(s.key); ok {
		if rec, ok := v.(*T); ok {
			cp := *rec // callers may edit the result without touching the cache
			return &cp, nil
		}
	}
	rec := new(T)
	PT(rec).ForceSingletonKey()
	if err := s.db.WithContext(ctx).FirstOrCreate(rec).Error; err != nil {
		return nil, err
	}
	s.cache.Set(s.key, rec, s.ttl)
	cp := *rec
	return &cp, nil
}

// Save writes the record under the fixed key, then evicts the cache entry.
// The store write must land before eviction; evict-then-write would let a
// concurrent Load resurrect the pre-write value.
func (s *Store[T, PT]) Save(ctx context.Context, rec *T) error {
	PT(rec).ForceSingletonKey()
	tx := s.db.WithContext(ctx).Model(rec).Select("*").Omit("created_at").Updates(rec)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
			return err
		}
	}
	s.cache.Delete(s.key)
	return nil
}

// Delete evicts the cache entry, then removes the stored row.
func (s *Store[T, PT]) Delete(ctx context.Context, rec *T) error {
	PT(rec).ForceSingletonKey()
	s.cache.Delete(s.key)
	return s.db.WithContext(ctx).Delete(rec).Error
}
