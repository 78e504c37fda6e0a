// Package rules holds the rewrite machinery of the conversion pipelines:
// tab separated conversion tables keyed by lemma, part of speech and
// lexeme id, and a dispatcher of (predicate, action) pairs with snapshot
// semantics. Predicates see the sentence as it was before the rule set
// ran; actions edit the live sentence. A rule therefore never feeds its
// own matches.
package rules

import (
	"fmt"

	"github.com/revelaction/grabar/sentence"
)

// Predicate decides whether a rule fires for a token. It runs against an
// immutable snapshot of the sentence and must not modify it.
type Predicate func(s *sentence.Sentence, x *sentence.Index, tok *sentence.Token) bool

// Action applies the rule's edit to the live sentence. The index reflects
// the sentence as of the action's invocation.
type Action func(s *sentence.Sentence, x *sentence.Index, tok *sentence.Token) error

// Rule pairs a predicate with an action.
type Rule struct {
	Name string
	When Predicate
	Then Action
}

// Set is an ordered collection of rules, applied in declaration order.
type Set struct {
	rules []Rule
}

// NewSet builds a rule set.
func NewSet(rules ...Rule) *Set {
	return &Set{rules: rules}
}

// Add appends a rule.
func (rs *Set) Add(r Rule) {
	rs.rules = append(rs.rules, r)
}

// Apply runs every rule over the sentence and returns the number of
// actions applied. Matches are computed on a snapshot taken before the
// rule runs, then actions are applied to the live sentence by token id;
// a matched token removed by an earlier action is skipped.
func (rs *Set) Apply(s *sentence.Sentence) (int, error) {
	applied := 0
	for _, r := range rs.rules {
		snap := s.Clone()
		sx := sentence.NewIndex(snap)

		var matched []sentence.ID
		for _, t := range snap.Tokens {
			if t.IsSpan() {
				continue
			}
			if r.When(snap, sx, t) {
				matched = append(matched, t.ID)
			}
		}

		for _, id := range matched {
			lx := sentence.NewIndex(s)
			live, ok := lx.Token(id)
			if !ok {
				continue
			}
			if err := r.Then(s, lx, live); err != nil {
				return applied, fmt.Errorf("rules: %s: token %s: %w", r.Name, id, err)
			}
			applied++
		}
	}
	return applied, nil
}

// Convert is the canonical table rule: look each token up in the table
// and apply its rewrite. Lookup ambiguity aborts the rule set.
func Convert(name string, t *Table) Rule {
	return Rule{
		Name: name,
		When: func(_ *sentence.Sentence, _ *sentence.Index, tok *sentence.Token) bool {
			// An ambiguous key still matches so the action can surface
			// the conflict instead of skipping it silently.
			_, ok, err := t.Lookup(tok)
			return ok || err != nil
		},
		Then: func(_ *sentence.Sentence, _ *sentence.Index, tok *sentence.Token) error {
			rw, ok, err := t.Lookup(tok)
			if err != nil {
				return err
			}
			if ok {
				rw.Apply(tok)
			}
			return nil
		},
	}
}
