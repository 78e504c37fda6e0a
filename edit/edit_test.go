package edit

import (
	"errors"
	"testing"

	"github.com/revelaction/grabar/sentence"
)

func tok(id int, form string, head int, rel string) *sentence.Token {
	return &sentence.Token{
		ID:     sentence.Num(id),
		Form:   form,
		Lemma:  form,
		Head:   sentence.Num(head),
		Deprel: rel,
	}
}

func sent(tokens ...*sentence.Token) *sentence.Sentence {
	return &sentence.Sentence{Tokens: tokens}
}

func TestSplitWithSpan(t *testing.T) {
	// An interjection with an inline exclamation mark becomes a multiword
	// placeholder over a plain token plus a punctuation token.
	s := sent(tok(1, "Աւա՜ղ", 0, "root"))
	s.Tokens[0].UPOS = "INTJ"
	x := sentence.NewIndex(s)

	err := Split(s, x, s.Tokens[0], []Part{
		{Form: "Աւաղ", Lemma: "աւաղ", UPOS: "INTJ"},
		{Form: "՜", Lemma: "՜", UPOS: "PUNCT", Deprel: "punct"},
	}, SplitOptions{Span: true, Host: -1})
	if err != nil {
		t.Fatal(err)
	}
	sentence.Renumber(s)

	if len(s.Tokens) != 3 {
		t.Fatalf("got %d tokens", len(s.Tokens))
	}
	span := s.Tokens[0]
	if !span.IsSpan() || span.ID.String() != "1-2" || span.Form != "Աւա՜ղ" {
		t.Errorf("span = %s %q", span.ID, span.Form)
	}
	base := s.Tokens[1]
	if base.Form != "Աւաղ" || base.Head != sentence.Root || base.Deprel != "root" {
		t.Errorf("base = %q head %s rel %s", base.Form, base.Head, base.Deprel)
	}
	excl := s.Tokens[2]
	if excl.Head != sentence.Num(1) || excl.Deprel != "punct" {
		t.Errorf("excl head %s rel %s", excl.Head, excl.Deprel)
	}
}

func TestSplitFormMismatch(t *testing.T) {
	s := sent(tok(1, "abc", 0, "root"))
	x := sentence.NewIndex(s)
	err := Split(s, x, s.Tokens[0], []Part{
		{Form: "ab"},
		{Form: "d", Deprel: "fixed"},
	}, SplitOptions{Host: -1})
	if !errors.Is(err, ErrFormMismatch) {
		t.Fatalf("err = %v", err)
	}
}

func TestSplitRepointsDependents(t *testing.T) {
	s := sent(
		tok(1, "det", 2, "det"),
		tok(2, "nounս", 0, "root"),
		tok(3, "amod", 2, "amod"),
	)
	x := sentence.NewIndex(s)

	err := Split(s, x, s.Tokens[1], []Part{
		{Form: "noun"},
		{Form: "ս", Lemma: "դու", UPOS: "DET", Deprel: "det"},
	}, SplitOptions{Host: -1})
	if err != nil {
		t.Fatal(err)
	}
	sentence.Renumber(s)

	if len(s.Tokens) != 4 {
		t.Fatalf("got %d tokens", len(s.Tokens))
	}
	host := s.Tokens[1]
	if host.Form != "noun" || host.Head != sentence.Root || host.Deprel != "root" {
		t.Errorf("host = %q head %s rel %s", host.Form, host.Head, host.Deprel)
	}
	if got, _ := host.Misc.Get("SpaceAfter"); got != "No" {
		t.Errorf("SpaceAfter = %q", got)
	}
	for _, i := range []int{0, 2, 3} {
		if s.Tokens[i].Head != host.ID {
			t.Errorf("token %s head = %s, want %s", s.Tokens[i].ID, s.Tokens[i].Head, host.ID)
		}
	}
}

func TestSplitThenMergeRestoresForm(t *testing.T) {
	s := sent(tok(1, "նորա", 0, "root"))
	x := sentence.NewIndex(s)

	err := Split(s, x, s.Tokens[0], []Part{
		{Form: "նոր", Lemma: "նոր"},
		{Form: "ա", Lemma: "ա", Deprel: "fixed"},
	}, SplitOptions{Host: -1})
	if err != nil {
		t.Fatal(err)
	}
	sentence.Renumber(s)
	x = sentence.NewIndex(s)

	if err := Merge(s, x, s.Tokens[0], s.Tokens[1]); err != nil {
		t.Fatal(err)
	}
	if len(s.Tokens) != 1 || s.Tokens[0].Form != "նորա" {
		t.Fatalf("got %d tokens, form %q", len(s.Tokens), s.Tokens[0].Form)
	}
	if s.Tokens[0].Misc.Has("SpaceAfter=No") {
		t.Error("inner adjacency mark survived the merge")
	}
}

func TestMergeReattachesDependents(t *testing.T) {
	s := sent(
		tok(1, "a", 0, "root"),
		tok(2, "b", 1, "fixed"),
		tok(3, "c", 2, "amod"),
	)
	x := sentence.NewIndex(s)

	if err := Merge(s, x, s.Tokens[0], s.Tokens[1]); err != nil {
		t.Fatal(err)
	}
	if s.Tokens[0].Form != "ab" {
		t.Errorf("form = %q", s.Tokens[0].Form)
	}
	if s.Tokens[1].Head != sentence.Num(1) {
		t.Errorf("dependent head = %s", s.Tokens[1].Head)
	}
}

func TestMergeSurvivorHeadedByAbsorbed(t *testing.T) {
	s := sent(
		tok(1, "a", 2, "fixed"),
		tok(2, "b", 0, "root"),
	)
	x := sentence.NewIndex(s)

	if err := Merge(s, x, s.Tokens[0], s.Tokens[1]); err != nil {
		t.Fatal(err)
	}
	got := s.Tokens[0]
	if got.Form != "ab" || got.Head != sentence.Root || got.Deprel != "root" {
		t.Errorf("survivor = %q head %s rel %s", got.Form, got.Head, got.Deprel)
	}
}

func TestPromote(t *testing.T) {
	// Elided verb: the subject takes the verb's place, the object becomes
	// an orphan and punctuation keeps its relation.
	s := sent(
		tok(1, "verb", 0, "root"),
		tok(2, "subj", 1, "nsubj"),
		tok(3, "obj", 1, "obj"),
		tok(4, ",", 1, "punct"),
	)
	x := sentence.NewIndex(s)

	if err := Promote(s, x, s.Tokens[1], s.Tokens[0], "orphan"); err != nil {
		t.Fatal(err)
	}
	if len(s.Tokens) != 3 {
		t.Fatalf("got %d tokens", len(s.Tokens))
	}
	subj := s.Tokens[0]
	if subj.Head != sentence.Root || subj.Deprel != "root" {
		t.Errorf("promoted = head %s rel %s", subj.Head, subj.Deprel)
	}
	if s.Tokens[1].Head != subj.ID || s.Tokens[1].Deprel != "orphan" {
		t.Errorf("obj = head %s rel %s", s.Tokens[1].Head, s.Tokens[1].Deprel)
	}
	if s.Tokens[2].Deprel != "punct" {
		t.Errorf("punct rel = %s", s.Tokens[2].Deprel)
	}
}

func TestDeleteRefusedWithDependents(t *testing.T) {
	s := sent(
		tok(1, "a", 0, "root"),
		tok(2, "b", 1, "obj"),
	)
	x := sentence.NewIndex(s)

	if err := Delete(s, x, s.Tokens[0]); !errors.Is(err, ErrHasDependents) {
		t.Fatalf("err = %v", err)
	}
	if err := Delete(s, x, s.Tokens[1]); err != nil {
		t.Fatal(err)
	}
	if len(s.Tokens) != 1 {
		t.Fatalf("got %d tokens", len(s.Tokens))
	}
}

func TestInsertSynthetic(t *testing.T) {
	s := sent(tok(1, "a", 0, "root"))
	ins := InsertSynthetic(s, 99, &sentence.Token{
		Form: ":", Lemma: ":", UPOS: "PUNCT",
		Head: sentence.Num(1), Deprel: "punct",
	})
	if !ins.ID.IsTemp() {
		t.Errorf("id = %s, want temporary", ins.ID)
	}
	if s.Tokens[len(s.Tokens)-1] != ins {
		t.Error("insert position not clamped to end")
	}
	sentence.Renumber(s)
	if ins.ID != sentence.Num(2) {
		t.Errorf("renumbered id = %s", ins.ID)
	}
}

func TestReattach(t *testing.T) {
	s := sent(
		tok(1, "a", 0, "root"),
		tok(2, "b", 1, "obj"),
	)
	Reattach(s.Tokens[1], sentence.Root, "root")
	if s.Tokens[1].Head != sentence.Root || s.Tokens[1].Deprel != "root" {
		t.Errorf("got head %s rel %s", s.Tokens[1].Head, s.Tokens[1].Deprel)
	}

	var none sentence.ID
	Reattach(s.Tokens[1], none, "")
	if !s.Tokens[1].Head.IsZero() {
		t.Errorf("head = %s, want cleared", s.Tokens[1].Head)
	}
	if s.Tokens[1].Deprel != "root" {
		t.Error("empty rel must keep the relation")
	}
}
