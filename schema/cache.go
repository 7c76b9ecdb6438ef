package schema

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds compiled schemas keyed by function identity, so a schema is
// derived once at decoration time and reused on every call. Safe for
// concurrent use; concurrent first-touch of the same key builds once.
type Cache struct {
	schemas sync.Map           // key -> *Schema
	sfGroup singleflight.Group // prevents duplicate compilation
}

// NewCache creates an empty schema cache.
func NewCache() *Cache {
	return &Cache{}
}

// Resolve returns the cached schema for key, invoking build at most once
// per key even under concurrent callers. A build error is not cached;
// the next caller retries.
func (c *Cache) Resolve(key string, build func() (*Schema, error)) (*Schema, error) {
	if v, ok := c.schemas.Load(key); ok {
		return v.(*Schema), nil
	}

	v, err, _ := c.sfGroup.Do(key, func() (any, error) {
		if v, ok := c.schemas.Load(key); ok {
			return v.(*Schema), nil
		}
		s, err := build()
		if err != nil {
			return nil, err
		}
		c.schemas.Store(key, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schema), nil
}

// Put stores an explicit schema for key, replacing any cached one.
func (c *Cache) Put(key string, s *Schema) {
	c.schemas.Store(key, s)
}

// Get returns the cached schema for key, if present.
func (c *Cache) Get(key string) (*Schema, bool) {
	v, ok := c.schemas.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Schema), true
}
