// Package edit provides the structural operations of the conversion
// pipelines: splitting and merging tokens, reattaching, promoting,
// inserting and deleting nodes.
//
// Every operation works on a Sentence plus an Index snapshot and leaves
// the sentence with temporary ids where new tokens were created. After a
// batch of edits the caller rebuilds the index and runs sentence.Renumber;
// no operation patches an index in place.
//
// None of the operations verifies global acyclicity; a pipeline composing
// many local rewrites should run Index.CheckCycles before export.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

var (
	// ErrNotFound indicates the token is not part of the sentence.
	ErrNotFound = errors.New("edit: token not in sentence")

	// ErrHasDependents indicates a delete target still governs tokens.
	ErrHasDependents = errors.New("edit: token still has dependents")

	// ErrFormMismatch indicates split parts do not reconstruct the form.
	ErrFormMismatch = errors.New("edit: parts do not reconstruct the original form")
)

// Part describes one token produced by Split. Empty fields inherit from
// the token being split; Feats and Misc are inherited only when nil.
type Part struct {
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  sentence.Tags
	Deprel string
	Misc   sentence.Tags
}

// SplitOptions controls Split.
type SplitOptions struct {
	// Span inserts a multiword placeholder before the parts, carrying the
	// original surface form. Without a span, the concatenated part forms
	// must equal the original form and all parts but the last are marked
	// SpaceAfter=No.
	Span bool

	// Host is the index of the part that inherits the original head and
	// relation and receives the repointed dependents. Negative picks the
	// first non-PUNCT part.
	Host int

	// Repoint selects which dependents of the original token move to the
	// host. Nil moves all of them.
	Repoint func(*sentence.Token) bool
}

// Split replaces tok with the given parts, in order. Non-host parts attach
// to the host; their Deprel must be set by the caller. New tokens carry
// temporary ids until the next renumber pass.
func Split(s *sentence.Sentence, x *sentence.Index, tok *sentence.Token, parts []Part, opts SplitOptions) error {
	if len(parts) < 2 {
		return fmt.Errorf("edit: split needs at least two parts, got %d", len(parts))
	}
	pos := position(s, tok)
	if pos < 0 {
		return ErrNotFound
	}

	host := opts.Host
	if host < 0 {
		host = 0
		for i, p := range parts {
			if p.UPOS != "PUNCT" {
				host = i
				break
			}
		}
	}
	if host >= len(parts) {
		return fmt.Errorf("edit: host part %d out of range", opts.Host)
	}

	if !opts.Span {
		var joined strings.Builder
		for _, p := range parts {
			joined.WriteString(p.Form)
		}
		if joined.String() != tok.Form {
			return fmt.Errorf("%w: %q != %q", ErrFormMismatch, joined.String(), tok.Form)
		}
	}

	// Materialize the parts with inherited attributes and temp ids.
	tokens := make([]*sentence.Token, 0, len(parts)+1)
	if opts.Span {
		tokens = append(tokens, &sentence.Token{
			Form:    tok.Form,
			Members: len(parts),
			Misc:    spanMisc(tok),
		})
	}
	ids := make([]sentence.ID, len(parts))
	for i := range parts {
		ids[i] = s.NextTemp()
	}
	for i, p := range parts {
		nt := &sentence.Token{
			ID:     ids[i],
			Form:   p.Form,
			Lemma:  inherit(p.Lemma, tok.Lemma),
			UPOS:   inherit(p.UPOS, tok.UPOS),
			XPOS:   inherit(p.XPOS, tok.XPOS),
			Deprel: p.Deprel,
			Misc:   p.Misc,
		}
		if p.Feats != nil {
			nt.Feats = p.Feats
		} else {
			nt.Feats = tok.Feats.Clone()
		}
		if i == host {
			nt.Head = tok.Head
			if nt.Deprel == "" {
				nt.Deprel = tok.Deprel
			}
			nt.Deps = tok.Deps
		} else {
			nt.Head = ids[host]
		}
		if !opts.Span && i < len(parts)-1 {
			nt.Misc = nt.Misc.Set("SpaceAfter", "No")
		}
		tokens = append(tokens, nt)
	}
	// The last part takes over the original adjacency to the next token.
	if !tok.SpaceAfter() {
		last := tokens[len(tokens)-1]
		last.Misc = last.Misc.Set("SpaceAfter", "No")
	}

	// Repoint dependents of the original token to the host part.
	for _, dep := range x.Dependents(tok.ID) {
		if opts.Repoint != nil && !opts.Repoint(dep) {
			continue
		}
		dep.Head = ids[host]
		dep.MarkEdited()
	}

	s.Tokens = append(s.Tokens[:pos], append(tokens, s.Tokens[pos+1:]...)...)
	return nil
}

// Merge folds absorbed into survivor: the survivor takes over the
// absorbed token's characters in form and lemma (in surface order) and
// its dependents. If the survivor hung off the absorbed token it inherits
// its head and relation. The inverse of a plain Split.
func Merge(s *sentence.Sentence, x *sentence.Index, survivor, absorbed *sentence.Token) error {
	sp := position(s, survivor)
	ap := position(s, absorbed)
	if sp < 0 || ap < 0 {
		return ErrNotFound
	}

	if sp < ap {
		survivor.Form += absorbed.Form
		survivor.Lemma += absorbed.Lemma
		// The right edge decides adjacency to the next token.
		survivor.Misc = survivor.Misc.Remove("SpaceAfter")
		if !absorbed.SpaceAfter() {
			survivor.Misc = survivor.Misc.Set("SpaceAfter", "No")
		}
	} else {
		survivor.Form = absorbed.Form + survivor.Form
		survivor.Lemma = absorbed.Lemma + survivor.Lemma
	}

	if survivor.Head == absorbed.ID {
		survivor.Head = absorbed.Head
		survivor.Deprel = absorbed.Deprel
	}
	for _, dep := range x.Dependents(absorbed.ID) {
		if dep == survivor {
			continue
		}
		dep.Head = survivor.ID
		dep.MarkEdited()
	}
	survivor.MarkEdited()

	s.Tokens = append(s.Tokens[:ap], s.Tokens[ap+1:]...)
	return nil
}

// Reattach points tok at a new head. A zero head clears the attachment
// entirely: the token serializes with no head per the format's "no head"
// convention. An empty rel keeps the current relation.
func Reattach(tok *sentence.Token, head sentence.ID, rel string) {
	tok.Head = head
	if rel != "" {
		tok.Deprel = rel
	}
	tok.MarkEdited()
}

// Promote removes ancestor and puts node in its place: node inherits the
// ancestor's head and relation, and the ancestor's other dependents are
// reattached to node. When orphanRel is non-empty, reattached dependents
// that are not punctuation take it as their new relation (ellipsis
// resolution).
func Promote(s *sentence.Sentence, x *sentence.Index, node, ancestor *sentence.Token, orphanRel string) error {
	ap := position(s, ancestor)
	if ap < 0 || position(s, node) < 0 {
		return ErrNotFound
	}

	node.Head = ancestor.Head
	node.Deprel = ancestor.Deprel
	node.MarkEdited()

	for _, dep := range x.Dependents(ancestor.ID) {
		if dep == node {
			continue
		}
		dep.Head = node.ID
		if orphanRel != "" && dep.Deprel != "punct" {
			dep.Deprel = orphanRel
		}
		dep.MarkEdited()
	}

	s.Tokens = append(s.Tokens[:ap], s.Tokens[ap+1:]...)
	return nil
}

// InsertSynthetic creates a new token (an inferred punctuation sign, a
// detached clitic) at the given position. A zero id is replaced with a
// temporary one. Returns the inserted token.
func InsertSynthetic(s *sentence.Sentence, pos int, tok *sentence.Token) *sentence.Token {
	if tok.ID.IsZero() {
		tok.ID = s.NextTemp()
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.Tokens) {
		pos = len(s.Tokens)
	}
	s.Tokens = append(s.Tokens[:pos], append([]*sentence.Token{tok}, s.Tokens[pos:]...)...)
	return tok
}

// Delete removes tok from the sentence. Deleting a token that still has
// dependents violates referential integrity and is refused; reattach them
// first.
func Delete(s *sentence.Sentence, x *sentence.Index, tok *sentence.Token) error {
	pos := position(s, tok)
	if pos < 0 {
		return ErrNotFound
	}
	if deps := x.Dependents(tok.ID); len(deps) > 0 {
		return fmt.Errorf("%w: %s has %d", ErrHasDependents, tok.ID, len(deps))
	}
	s.Tokens = append(s.Tokens[:pos], s.Tokens[pos+1:]...)
	return nil
}

func position(s *sentence.Sentence, tok *sentence.Token) int {
	for i, t := range s.Tokens {
		if t == tok {
			return i
		}
	}
	return -1
}

func inherit(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}

// spanMisc keeps the surface adjacency of the original token on the new
// placeholder.
func spanMisc(tok *sentence.Token) sentence.Tags {
	if !tok.SpaceAfter() {
		return sentence.Tags{"SpaceAfter=No"}
	}
	return nil
}
