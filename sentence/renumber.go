package sentence

import "strings"

// IDMap records the old→new id assignment of one renumber pass. It is
// built once per pass and discarded after heads are rewritten.
type IDMap map[ID]ID

// Dangling records a head reference that no token id resolved after a
// renumber pass. It is reported to the caller, never repaired: repairing
// would mask the rule bug that produced it.
type Dangling struct {
	Token ID // new id of the referring token
	Head  ID // the unresolved head value as written
}

// ShortSpan records a multiword placeholder that declared more members
// than the atomic tokens actually following it. The range is shrunk to
// the members present; the shortfall is reported, never ignored.
type ShortSpan struct {
	Span     ID // the shrunk range as assigned
	Declared int
	Present  int
}

// Renumber assigns sequential ids 1..N to the atomic tokens of s in their
// current order, gives every multiword placeholder a contiguous range
// covering exactly the atomic members that follow it (a placeholder
// declaring more is shrunk and reported as a ShortSpan), and rewrites
// every head (and DEPS head) through the old→new map.
// Root and undefined heads pass through unchanged; span-first placeholder
// heads resolve to the first member of the token's own span. O(n).
//
// Renumbering an already sequential sentence is the identity.
func Renumber(s *Sentence) (IDMap, []Dangling, []ShortSpan) {
	m := make(IDMap)

	// spanFirst maps each token position inside a multiword span to the
	// new id of the span's first atomic member.
	spanFirst := make(map[int]ID)

	var short []ShortSpan
	next := 1
	i := 0
	for i < len(s.Tokens) {
		t := s.Tokens[i]
		if t.Malformed() {
			i++
			continue
		}
		if t.IsSpan() {
			members := t.SpanMembers()
			start := next
			first := Num(start)

			consumed := 0
			for j := 0; j < members && i+1+j < len(s.Tokens); j++ {
				sub := s.Tokens[i+1+j]
				if sub.Malformed() || sub.IsSpan() {
					break
				}
				assign(sub, m, Num(start+j))
				spanFirst[i+1+j] = first
				consumed++
			}

			// The range covers exactly the members present. A placeholder
			// that declared more is shrunk and the shortfall reported.
			end := start + consumed - 1
			if consumed == 0 {
				end = start
			}
			newID := Span(start, end)
			assign(t, m, newID)
			t.Members = 0
			if consumed < members {
				short = append(short, ShortSpan{Span: newID, Declared: members, Present: consumed})
			}

			next = start + consumed
			i += 1 + consumed
			continue
		}
		assign(t, m, Num(next))
		next++
		i++
	}

	// Second pass: rewrite heads and DEPS through the map.
	var faults []Dangling
	for pos, t := range s.Tokens {
		if t.Malformed() {
			continue
		}
		switch {
		case t.Head.IsZero(), t.Head.IsRoot():
			// pass through
		case t.Head.IsSpanFirst():
			first, ok := spanFirst[pos]
			if !ok {
				faults = append(faults, Dangling{Token: t.ID, Head: t.Head})
				continue
			}
			t.Head = first
			t.MarkEdited()
		default:
			mapped, ok := m[t.Head]
			if !ok {
				faults = append(faults, Dangling{Token: t.ID, Head: t.Head})
				continue
			}
			if mapped != t.Head {
				t.Head = mapped
				t.MarkEdited()
			}
		}
		if t.Deps != "" && t.Deps != "_" {
			if deps, changed := remapDeps(t.Deps, m); changed {
				t.Deps = deps
				t.MarkEdited()
			}
		}
	}
	return m, faults, short
}

func assign(t *Token, m IDMap, newID ID) {
	if !t.ID.IsZero() {
		if _, dup := m[t.ID]; !dup {
			m[t.ID] = newID
		}
	}
	if t.ID != newID {
		t.ID = newID
		t.MarkEdited()
	}
}

// remapDeps rewrites the leading head id of every "head:rel" item in a DEPS
// column through the map, leaving unknown ids untouched.
func remapDeps(deps string, m IDMap) (string, bool) {
	changed := false
	items := strings.Split(deps, "|")
	for i, item := range items {
		head, rel, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		id, err := ParseID(head)
		if err != nil {
			continue
		}
		if mapped, ok := m[id]; ok && mapped != id {
			items[i] = mapped.String() + ":" + rel
			changed = true
		}
	}
	if !changed {
		return deps, false
	}
	return strings.Join(items, "|"), true
}
