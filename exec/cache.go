package exec

import (
	"context"
	"database/sql"
	"hash/fnv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 128

// stmtCache keeps prepared statements in an LRU keyed by a hash of the SQL
// text. Eviction closes the statement so the driver can release it.
type stmtCache struct {
	mu  sync.Mutex
	lru *lru.Cache[uint64, *sql.Stmt]
}

func newStmtCache(size int) *stmtCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, _ := lru.NewWithEvict(size, func(_ uint64, stmt *sql.Stmt) {
		_ = stmt.Close()
	})
	return &stmtCache{lru: cache}
}

func hashSQL(query string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(query))
	return h.Sum64()
}

// prepare returns the cached statement for query, preparing and caching it
// on a miss. The lock covers the prepare so concurrent callers never race
// to prepare the same text twice.
func (c *stmtCache) prepare(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	key := hashSQL(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if stmt, ok := c.lru.Get(key); ok {
		return stmt, nil
	}
	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, stmt)
	return stmt, nil
}

// len reports the number of cached statements.
func (c *stmtCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// close evicts everything, closing each statement via the evict callback.
func (c *stmtCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
