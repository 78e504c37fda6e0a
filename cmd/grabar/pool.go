package main

import (
	"path/filepath"

	"github.com/revelaction/grabar/storage"
	"github.com/revelaction/grabar/storage/sqlite/zombiezen"
)

func isTSV(path string) bool {
	return filepath.Ext(path) == ".tsv"
}

// openGlossDB opens the SQLite gloss lexicon, creating the schema if
// missing. The returned func closes the pool.
func openGlossDB(path string) (storage.GlossRepository, func(), error) {
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, nil, err
	}
	if err := zombiezen.CreateGlossTables(pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return zombiezen.NewGlossHandler(pool), func() { pool.Close() }, nil
}
