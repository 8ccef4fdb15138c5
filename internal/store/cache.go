package store

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aweris/gitodb/internal/object"
)

// Cache keeps recently decoded objects in memory.
type Cache interface {
	Get(id object.ID) (object.Object, bool)
	Add(id object.ID, obj object.Object)
	Has(id object.ID) bool
	Remove(id object.ID)
	Clear()
}

// LRUCache is a size-bounded Cache evicting the least recently used object.
type LRUCache struct {
	items *lru.Cache[object.ID, object.Object]
}

// NewLRUCache returns a cache holding at most maxSize objects. A
// non-positive size disables caching.
func NewLRUCache(maxSize int) (Cache, error) {
	if maxSize <= 0 {
		return noCache{}, nil
	}
	items, err := lru.New[object.ID, object.Object](maxSize)
	if err != nil {
		return nil, err
	}
	return &LRUCache{items: items}, nil
}

func (c *LRUCache) Get(id object.ID) (object.Object, bool) {
	return c.items.Get(id)
}

func (c *LRUCache) Add(id object.ID, obj object.Object) {
	c.items.Add(id, obj)
}

func (c *LRUCache) Has(id object.ID) bool {
	return c.items.Contains(id)
}

func (c *LRUCache) Remove(id object.ID) {
	c.items.Remove(id)
}

func (c *LRUCache) Clear() {
	c.items.Purge()
}

type noCache struct{}

func (noCache) Get(object.ID) (object.Object, bool) { return object.Object{}, false }
func (noCache) Add(object.ID, object.Object)        {}
func (noCache) Has(object.ID) bool                  { return false }
func (noCache) Remove(object.ID)                    {}
func (noCache) Clear()                              {}
