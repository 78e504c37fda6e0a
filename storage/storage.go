// Package storage defines the repositories for the external lexical
// data the engine consumes: gloss lexica and rule tables. The engine
// never embeds this data; backends live in storage/filesystem and
// storage/sqlite/zombiezen.
package storage

import (
	"github.com/revelaction/grabar/rules"
)

// Gloss is one lexicon entry: a lemma, optionally narrowed by part of
// speech and lexeme id, mapped to a translation gloss.
type Gloss struct {
	Lemma string
	POS   string
	LId   string
	Gloss string
}

// GlossReader defines read operations for gloss storage.
type GlossReader interface {
	// All returns every gloss entry.
	All() ([]Gloss, error)

	// Lookup returns the entries for a lemma, most specific first
	// (matching POS before entries with no POS).
	Lookup(lemma, pos string) ([]Gloss, error)
}

// GlossWriter defines write operations for gloss storage.
type GlossWriter interface {
	// Write persists one gloss entry.
	Write(g Gloss) error
}

// GlossRepository combines read and write operations.
type GlossRepository interface {
	GlossReader
	GlossWriter
}

// TableReader loads named rule tables.
type TableReader interface {
	// Table returns the rule table with the given name.
	Table(name string) (*rules.Table, error)

	// Names returns the names of all available tables.
	Names() ([]string, error)
}
