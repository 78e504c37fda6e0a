package sentence

import "testing"

func tok(id ID, form string, head ID, deprel string) *Token {
	return &Token{ID: id, Form: form, Head: head, Deprel: deprel}
}

func TestRenumberRemapsHeads(t *testing.T) {
	// Tokens arrive out of order with reused head references.
	s := &Sentence{Tokens: []*Token{
		tok(Num(5), "a", Num(3), "nsubj"),
		tok(Num(3), "b", Root, "root"),
	}}

	m, faults, _ := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}

	if s.Tokens[0].ID != Num(1) || s.Tokens[0].Head != Num(2) {
		t.Errorf("first token = id %v head %v, want id 1 head 2", s.Tokens[0].ID, s.Tokens[0].Head)
	}
	if s.Tokens[1].ID != Num(2) || s.Tokens[1].Head != Root {
		t.Errorf("second token = id %v head %v, want id 2 head 0", s.Tokens[1].ID, s.Tokens[1].Head)
	}
	if m[Num(5)] != Num(1) || m[Num(3)] != Num(2) {
		t.Errorf("unexpected id map: %v", m)
	}
}

func TestRenumberIdempotent(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		tok(Num(1), "a", Num(2), "det"),
		tok(Num(2), "b", Root, "root"),
		tok(Num(3), "c", Num(2), "punct"),
	}}

	Renumber(s)
	before := make([]ID, len(s.Tokens))
	for i, tk := range s.Tokens {
		before[i] = tk.ID
	}

	_, faults, _ := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	for i, tk := range s.Tokens {
		if tk.ID != before[i] {
			t.Errorf("token %d changed id from %v to %v", i, before[i], tk.ID)
		}
	}
}

func TestRenumberAssignsSequentialWithoutGaps(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		tok(Num(2), "a", Root, "root"),
		tok(Num(7), "b", Num(2), "obj"),
		tok(Num(4), "c", Num(7), "det"),
	}}

	Renumber(s)
	for i, tk := range s.Tokens {
		if tk.ID != Num(i+1) {
			t.Errorf("token %d has id %v, want %d", i, tk.ID, i+1)
		}
	}
}

func TestRenumberSyntheticSpan(t *testing.T) {
	// A synthetic placeholder covering two members, spliced mid-sentence.
	s := &Sentence{}
	mwt := &Token{Form: "Աւա՜ղ", Members: 2}
	base := tok(s.NextTemp(), "Աւաղ", Root, "root")
	excl := tok(s.NextTemp(), "՜", base.ID, "punct")
	s.Tokens = []*Token{mwt, base, excl}

	_, faults, _ := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	if mwt.ID != Span(1, 2) {
		t.Errorf("span id = %v, want 1-2", mwt.ID)
	}
	if base.ID != Num(1) || excl.ID != Num(2) {
		t.Errorf("member ids = %v, %v, want 1, 2", base.ID, excl.ID)
	}
	if excl.Head != Num(1) {
		t.Errorf("punct head = %v, want 1", excl.Head)
	}
	if mwt.Members != 0 {
		t.Error("span member marker not consumed")
	}
}

func TestRenumberExistingSpanRange(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		tok(Num(1), "x", Num(4), "advmod"),
		{ID: Span(2, 3), Form: "du"},
		tok(Num(2), "d", Num(4), "case"),
		tok(Num(3), "u", Num(4), "det"),
		tok(Num(4), "y", Root, "root"),
	}}

	_, faults, _ := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	if s.Tokens[1].ID != Span(2, 3) {
		t.Errorf("range = %v, want 2-3", s.Tokens[1].ID)
	}

	// Ranges must exactly cover their members with no overlap.
	if s.Tokens[2].ID != Num(2) || s.Tokens[3].ID != Num(3) {
		t.Errorf("members = %v, %v", s.Tokens[2].ID, s.Tokens[3].ID)
	}
	if s.Tokens[4].ID != Num(4) {
		t.Errorf("following token = %v, want 4", s.Tokens[4].ID)
	}
}

func TestRenumberShrinksShortSpan(t *testing.T) {
	// The placeholder claims two members but only one follows. The
	// range shrinks to the member present and the shortfall is
	// reported, leaving no id gap.
	s := &Sentence{Tokens: []*Token{
		{ID: Span(1, 2), Form: "ab"},
		tok(Num(1), "a", Root, "root"),
	}}

	_, faults, short := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected dangling heads: %v", faults)
	}
	if len(short) != 1 {
		t.Fatalf("expected 1 short span, got %v", short)
	}
	if short[0].Declared != 2 || short[0].Present != 1 {
		t.Errorf("shortfall = %+v", short[0])
	}
	if s.Tokens[0].ID != Span(1, 1) || short[0].Span != Span(1, 1) {
		t.Errorf("range = %v, want 1-1", s.Tokens[0].ID)
	}
	if s.Tokens[1].ID != Num(1) {
		t.Errorf("member = %v, want 1", s.Tokens[1].ID)
	}
}

func TestRenumberSpanFirstPlaceholder(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		{Form: "ab", Members: 2},
		{Form: "a", Head: Root, Deprel: "root"},
		{Form: "b", Head: SpanFirst(), Deprel: "punct"},
	}}

	_, faults, _ := Renumber(s)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}
	if s.Tokens[2].Head != Num(1) {
		t.Errorf("placeholder head resolved to %v, want 1", s.Tokens[2].Head)
	}
}

func TestRenumberReportsDangling(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		tok(Num(1), "a", Root, "root"),
		tok(Num(2), "b", Num(9), "obj"),
	}}

	_, faults, _ := Renumber(s)
	if len(faults) != 1 {
		t.Fatalf("expected 1 dangling head, got %v", faults)
	}
	if faults[0].Token != Num(2) || faults[0].Head != Num(9) {
		t.Errorf("unexpected fault: %+v", faults[0])
	}
	// The head must not be silently repaired.
	if s.Tokens[1].Head != Num(9) {
		t.Errorf("dangling head was rewritten to %v", s.Tokens[1].Head)
	}
}

func TestRenumberRemapsDeps(t *testing.T) {
	s := &Sentence{Tokens: []*Token{
		tok(Num(5), "a", Num(3), "nsubj"),
		tok(Num(3), "b", Root, "root"),
	}}
	s.Tokens[0].Deps = "3:nsubj"

	Renumber(s)
	if s.Tokens[0].Deps != "2:nsubj" {
		t.Errorf("deps = %q, want 2:nsubj", s.Tokens[0].Deps)
	}
}
