package sentence

// Direction restricts dependent queries to one side of the head.
type Direction int

const (
	Anywhere Direction = iota
	Before
	After
)

// Index holds the id→token and head→dependents maps derived from a
// sentence. It is a snapshot: rebuild it after any edit that changes ids or
// heads, never patch it in place. Stale indices are the dominant corruption
// source in per-rule rewriting.
type Index struct {
	s          *Sentence
	pos        map[ID]int
	dependents map[ID][]int
}

// NewIndex builds the index in O(n).
func NewIndex(s *Sentence) *Index {
	x := &Index{
		s:          s,
		pos:        make(map[ID]int, len(s.Tokens)),
		dependents: make(map[ID][]int),
	}
	for i, t := range s.Tokens {
		if t.Malformed() {
			continue
		}
		if !t.ID.IsZero() {
			x.pos[t.ID] = i
		}
		if !t.Head.IsZero() && !t.Head.IsRoot() {
			x.dependents[t.Head] = append(x.dependents[t.Head], i)
		}
	}
	return x
}

// Token returns the token with the given id.
func (x *Index) Token(id ID) (*Token, bool) {
	i, ok := x.pos[id]
	if !ok {
		return nil, false
	}
	return x.s.Tokens[i], true
}

// Head returns the head token of t, or nil for roots, undefined heads and
// dangling references.
func (x *Index) Head(t *Token) *Token {
	if t.Head.IsZero() || t.Head.IsRoot() {
		return nil
	}
	h, _ := x.Token(t.Head)
	return h
}

// Dependents returns the tokens whose head is id, in sentence order.
func (x *Index) Dependents(id ID) []*Token {
	idxs := x.dependents[id]
	out := make([]*Token, len(idxs))
	for i, p := range idxs {
		out[i] = x.s.Tokens[p]
	}
	return out
}

// FirstDependentWithRelation returns the first dependent of id whose deprel
// is in rels, searching in sentence order and honoring the direction
// relative to the head's position.
func (x *Index) FirstDependentWithRelation(id ID, rels map[string]bool, dir Direction) *Token {
	headPos, ok := x.pos[id]
	if !ok {
		return nil
	}
	for _, p := range x.dependents[id] {
		if dir == Before && p >= headPos {
			continue
		}
		if dir == After && p <= headPos {
			continue
		}
		if rels[x.s.Tokens[p].Deprel] {
			return x.s.Tokens[p]
		}
	}
	return nil
}

// HasDependentWithPOS reports whether any dependent of id has the given
// UPOS.
func (x *Index) HasDependentWithPOS(id ID, upos string) bool {
	for _, p := range x.dependents[id] {
		if x.s.Tokens[p].UPOS == upos {
			return true
		}
	}
	return false
}

// Roots returns the tokens whose head is the root marker, in order.
func (x *Index) Roots() []*Token {
	var out []*Token
	for _, t := range x.s.Tokens {
		if t.Head.IsRoot() && !t.IsSpan() && !t.Malformed() {
			out = append(out, t)
		}
	}
	return out
}

// Dangling returns the tokens whose numeric or temporary head resolves to
// no token id.
func (x *Index) Dangling() []*Token {
	var out []*Token
	for _, t := range x.s.Tokens {
		if t.Malformed() || t.Head.IsZero() || t.Head.IsRoot() || t.Head.IsSpanFirst() {
			continue
		}
		if _, ok := x.pos[t.Head]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// CheckCycles returns the ids of tokens that sit on a head cycle. Head
// cycles are never valid but no edit operation verifies acyclicity, so
// pipelines composed of many local rewrites should check before export.
func (x *Index) CheckCycles() []ID {
	var bad []ID
	for _, t := range x.s.Tokens {
		if t.Malformed() || t.ID.IsZero() || t.IsSpan() {
			continue
		}
		// Follow heads: a token is on a cycle iff the walk returns to
		// it. The step bound terminates walks that merely lead into a
		// cycle elsewhere.
		cur := x.Head(t)
		for steps := 0; cur != nil && steps <= len(x.pos); steps++ {
			if cur.ID == t.ID {
				bad = append(bad, t.ID)
				break
			}
			cur = x.Head(cur)
		}
	}
	return bad
}
