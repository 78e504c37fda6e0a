package zombiezen

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

const glossSchema = `
CREATE TABLE IF NOT EXISTS glosses (
	id INTEGER PRIMARY KEY,
	lemma TEXT NOT NULL,
	pos TEXT NOT NULL DEFAULT '',
	lid TEXT NOT NULL DEFAULT '',
	gloss TEXT NOT NULL,
	UNIQUE (lemma, pos, lid)
);
CREATE INDEX IF NOT EXISTS glosses_lemma ON glosses (lemma);
`

// CreateGlossTables creates the gloss schema if missing.
func CreateGlossTables(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, glossSchema, nil); err != nil {
		return fmt.Errorf("failed to create gloss tables: %w", err)
	}
	return nil
}
