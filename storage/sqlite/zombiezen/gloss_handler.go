package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/grabar/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type GlossHandler struct {
	pool *sqlitex.Pool
}

var _ storage.GlossRepository = (*GlossHandler)(nil)

func NewGlossHandler(pool *sqlitex.Pool) *GlossHandler {
	return &GlossHandler{pool: pool}
}

func (h *GlossHandler) All() ([]storage.Gloss, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var glosses []storage.Gloss
	err = sqlitex.Execute(conn, "SELECT lemma, pos, lid, gloss FROM glosses ORDER BY lemma, pos, lid", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			glosses = append(glosses, storage.Gloss{
				Lemma: stmt.ColumnText(0),
				POS:   stmt.ColumnText(1),
				LId:   stmt.ColumnText(2),
				Gloss: stmt.ColumnText(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return glosses, nil
}

func (h *GlossHandler) Lookup(lemma, pos string) ([]storage.Gloss, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	// POS matches first, then the bare lemma entries.
	var glosses []storage.Gloss
	err = sqlitex.Execute(conn,
		"SELECT lemma, pos, lid, gloss FROM glosses WHERE lemma = ? AND (pos = ? OR pos = '') ORDER BY pos DESC, lid",
		&sqlitex.ExecOptions{
			Args: []interface{}{lemma, pos},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				glosses = append(glosses, storage.Gloss{
					Lemma: stmt.ColumnText(0),
					POS:   stmt.ColumnText(1),
					LId:   stmt.ColumnText(2),
					Gloss: stmt.ColumnText(3),
				})
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return glosses, nil
}

func (h *GlossHandler) Write(g storage.Gloss) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO glosses (lemma, pos, lid, gloss) VALUES (?, ?, ?, ?) ON CONFLICT (lemma, pos, lid) DO UPDATE SET gloss = excluded.gloss",
		&sqlitex.ExecOptions{
			Args: []interface{}{g.Lemma, g.POS, g.LId, g.Gloss},
		})
	if err != nil {
		return fmt.Errorf("failed to write gloss %s: %w", g.Lemma, err)
	}
	return nil
}
