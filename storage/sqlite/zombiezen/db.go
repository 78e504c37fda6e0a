// Package zombiezen stores the gloss lexicon in SQLite through a
// sqlitex connection pool.
package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens (creating if missing) the lexicon database at dbPath.
// The default sqlitex flags apply: read-write, create, WAL, URI.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("open lexicon db %s: %w", dbPath, err)
	}
	return pool, nil
}
