package loader

import (
	"fmt"

	"github.com/signadot/protodoc/ir"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes the documents of another loader in a bounded LRU.
// Concurrent loads of the same name share one underlying load.  Errors are
// not cached.  Cache is safe for concurrent use; callers always receive
// their own copy.
type Cache struct {
	next  Loader
	cache *lru.Cache
	group singleflight.Group
}

func NewCache(next Loader, size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create cache: %w", err)
	}
	return &Cache{next: next, cache: c}, nil
}

func (c *Cache) Load(name string) (*ir.Node, error) {
	if v, ok := c.cache.Get(name); ok {
		return v.(*ir.Node).Clone(), nil
	}
	v, err, _ := c.group.Do(name, func() (any, error) {
		node, err := c.next.Load(name)
		if err != nil {
			return nil, err
		}
		if node != nil {
			c.cache.Add(name, node)
		}
		return node, nil
	})
	if err != nil {
		return nil, err
	}
	return ir.Clone(v.(*ir.Node)), nil
}

// Purge drops all cached documents.
func (c *Cache) Purge() {
	c.cache.Purge()
}

func (c *Cache) Len() int {
	return c.cache.Len()
}
