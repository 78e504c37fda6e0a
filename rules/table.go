package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

const (
	// MiscLId is the lexeme id key carried in the MISC column.
	MiscLId = "LId"

	blank = "_"
)

// Key identifies a conversion rule. LId and Lemma may be empty; an empty
// field widens the rule. Lookup prefers the most specific key.
type Key struct {
	Lemma string
	POS   string
	LId   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", orBlank(k.Lemma), orBlank(k.POS), orBlank(k.LId))
}

// Rewrite is the outcome of a conversion rule. Empty fields leave the
// token untouched; Feats and Misc are merged into the existing tags.
type Rewrite struct {
	Lemma string
	UPOS  string
	Feats sentence.Tags
	Misc  sentence.Tags
	LId   string
}

// Apply rewrites tok in place.
func (rw Rewrite) Apply(tok *sentence.Token) {
	if rw.Lemma != "" {
		tok.Lemma = rw.Lemma
	}
	if rw.UPOS != "" {
		tok.UPOS = rw.UPOS
	}
	tok.Feats = tok.Feats.Merge(rw.Feats)
	tok.Misc = tok.Misc.Merge(rw.Misc)
	if rw.LId != "" {
		tok.Misc = tok.Misc.Set(MiscLId, rw.LId)
	}
	tok.MarkEdited()
}

func (rw Rewrite) equal(other Rewrite) bool {
	return rw.Lemma == other.Lemma &&
		rw.UPOS == other.UPOS &&
		rw.LId == other.LId &&
		rw.Feats.String() == other.Feats.String() &&
		rw.Misc.String() == other.Misc.String()
}

type tableEntry struct {
	key  Key
	rw   Rewrite
	line int
}

// Table holds lemma conversion rules keyed by lemma, part of speech and
// lexeme id.
type Table struct {
	entries map[Key][]tableEntry
}

// AmbiguousError reports two rules with the same key but conflicting
// outcomes. The table refuses to pick one; the rule file must be fixed.
type AmbiguousError struct {
	Key   Key
	Lines [2]int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("rules: key %s matched by conflicting rules at lines %d and %d",
		e.Key, e.Lines[0], e.Lines[1])
}

// Add registers a rule. Duplicate keys with identical outcomes collapse
// to the earliest declaration.
func (t *Table) Add(key Key, rw Rewrite, line int) {
	if t.entries == nil {
		t.entries = make(map[Key][]tableEntry)
	}
	t.entries[key] = append(t.entries[key], tableEntry{key: key, rw: rw, line: line})
}

// Len returns the number of registered rules.
func (t *Table) Len() int {
	n := 0
	for _, es := range t.entries {
		n += len(es)
	}
	return n
}

// Lookup finds the rewrite for tok, trying lemma+pos+lid, then
// lemma+pos, then pos alone. Conflicting rules under the winning key
// yield an AmbiguousError.
func (t *Table) Lookup(tok *sentence.Token) (Rewrite, bool, error) {
	lid, _ := tok.Misc.Get(MiscLId)
	keys := []Key{
		{Lemma: tok.Lemma, POS: tok.UPOS, LId: lid},
		{Lemma: tok.Lemma, POS: tok.UPOS},
		{POS: tok.UPOS},
	}
	if lid == "" {
		keys = keys[1:]
	}
	for _, k := range keys {
		es, ok := t.entries[k]
		if !ok {
			continue
		}
		first := es[0]
		for _, e := range es[1:] {
			if !e.rw.equal(first.rw) {
				return Rewrite{}, false, &AmbiguousError{
					Key:   k,
					Lines: [2]int{first.line, e.line},
				}
			}
		}
		return first.rw, true, nil
	}
	return Rewrite{}, false, nil
}

// LoadTable reads a tab separated rule file. Columns: match lemma, match
// part of speech, match lexeme id, new lemma, new part of speech, new
// features, new misc tags. A "_" leaves the column unset; lines starting
// with "#" are skipped.
func LoadTable(r io.Reader) (*Table, error) {
	t := &Table{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 5 {
			return nil, fmt.Errorf("rules: line %d: want at least 5 columns, got %d", line, len(cols))
		}
		for len(cols) < 7 {
			cols = append(cols, blank)
		}
		key := Key{
			Lemma: unblank(cols[0]),
			POS:   unblank(cols[1]),
			LId:   unblank(cols[2]),
		}
		if key.POS == "" {
			return nil, fmt.Errorf("rules: line %d: part of speech column is required", line)
		}
		rw := Rewrite{
			Lemma: unblank(cols[3]),
			UPOS:  unblank(cols[4]),
			LId:   key.LId,
		}
		if f := unblank(cols[5]); f != "" {
			rw.Feats = sentence.ParseTags(f)
		}
		if m := unblank(cols[6]); m != "" {
			rw.Misc = sentence.ParseTags(m)
		}
		t.Add(key, rw, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return t, nil
}

// LoadTableFile reads a rule file from disk.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}

func unblank(s string) string {
	if s == blank {
		return ""
	}
	return s
}

func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}
