package match

import (
	"errors"
	"testing"

	"github.com/revelaction/grabar/sentence"
)

func mkSent(id, text string, forms ...string) *sentence.Sentence {
	s := &sentence.Sentence{}
	if id != "" {
		s.SetComment(sentence.KeySentID, id)
	}
	if text != "" {
		s.SetComment(sentence.KeyText, text)
	}
	for i, f := range forms {
		s.Tokens = append(s.Tokens, &sentence.Token{
			ID:   sentence.Num(i + 1),
			Form: f,
		})
	}
	return s
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Աւա՜ղ ձեզ,  կեղծաւորք.", "աւաղ ձեզ կեղծաւորք"},
		{"«Բան»", "բան"},
		{"ՄԵԾ   ու փոքր", "մեծ ու փոքր"},
		{"ո՞վ է", "ով է"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAlign(t *testing.T) {
	a := []*sentence.Sentence{
		mkSent("a1", "Աւա՜ղ ձեզ."),
		mkSent("a2", "ով է սա"),
		mkSent("a3", "միայն այստեղ"),
	}
	b := []*sentence.Sentence{
		mkSent("b1", "ո՞վ է սա"),
		mkSent("b2", "աւաղ ձեզ"),
		mkSent("b3", "ուրիշ բան"),
	}

	got := Align(a, b)
	if len(got.Pairs) != 2 {
		t.Fatalf("pairs = %d", len(got.Pairs))
	}
	if got.Pairs[0].B.SentID() != "b2" || got.Pairs[1].B.SentID() != "b1" {
		t.Errorf("paired %s and %s", got.Pairs[0].B.SentID(), got.Pairs[1].B.SentID())
	}
	if len(got.UnmatchedA) != 1 || got.UnmatchedA[0].SentID() != "a3" {
		t.Errorf("unmatchedA = %v", got.UnmatchedA)
	}
	if len(got.UnmatchedB) != 1 || got.UnmatchedB[0].SentID() != "b3" {
		t.Errorf("unmatchedB = %v", got.UnmatchedB)
	}
}

func TestAlignWithoutTextComment(t *testing.T) {
	a := []*sentence.Sentence{mkSent("a1", "", "աւաղ", "ձեզ")}
	b := []*sentence.Sentence{mkSent("b1", "Աւա՜ղ ձեզ.")}
	got := Align(a, b)
	if len(got.Pairs) != 1 {
		t.Fatalf("pairs = %d", len(got.Pairs))
	}
}

func TestMergeAnnotations(t *testing.T) {
	a := mkSent("a1", "", "տէր", "ասէ")
	a.Tokens[0].Head = sentence.Num(2)
	a.Tokens[0].Deprel = "nsubj"
	b := mkSent("b1", "", "տէր", "ասէ")
	b.Tokens[0].Lemma = "տէր"
	b.Tokens[0].UPOS = "NOUN"
	b.Tokens[0].Feats = sentence.Tags{"Case=Nom"}
	b.Tokens[1].Lemma = "ասեմ"
	b.Tokens[1].UPOS = "VERB"

	if err := Merge(Pair{A: a, B: b}); err != nil {
		t.Fatal(err)
	}
	if a.Tokens[0].Lemma != "տէր" || a.Tokens[0].UPOS != "NOUN" {
		t.Errorf("token 1 = %s/%s", a.Tokens[0].Lemma, a.Tokens[0].UPOS)
	}
	if !a.Tokens[0].Feats.Has("Case=Nom") {
		t.Errorf("feats = %s", a.Tokens[0].Feats)
	}
	// Structure untouched.
	if a.Tokens[0].Head != sentence.Num(2) || a.Tokens[0].Deprel != "nsubj" {
		t.Errorf("head %s rel %s", a.Tokens[0].Head, a.Tokens[0].Deprel)
	}
}

func TestMergeSuffixCliticSplitInPrimary(t *testing.T) {
	// Primary writes the deictic article as its own token, secondary
	// fuses it into the host.
	a := mkSent("a1", "", "որդի", "դ", "իմ")
	b := mkSent("b1", "", "որդիդ", "իմ")
	b.Tokens[0].Lemma = "որդի"
	b.Tokens[0].UPOS = "NOUN"
	b.Tokens[1].Lemma = "իմ"

	if err := Merge(Pair{A: a, B: b}); err != nil {
		t.Fatal(err)
	}
	if a.Tokens[0].Lemma != "որդի" || a.Tokens[0].UPOS != "NOUN" {
		t.Errorf("host = %s/%s", a.Tokens[0].Lemma, a.Tokens[0].UPOS)
	}
	if a.Tokens[1].Lemma != "" {
		t.Errorf("clitic annotated: %s", a.Tokens[1].Lemma)
	}
	if a.Tokens[2].Lemma != "իմ" {
		t.Errorf("tail = %s", a.Tokens[2].Lemma)
	}
}

func TestMergePrefixCliticSplitInSecondary(t *testing.T) {
	// Primary fuses the preposition, secondary splits it off. The fused
	// token takes the content word's annotations.
	a := mkSent("a1", "", "զգործ")
	b := mkSent("b1", "", "զ", "գործ")
	b.Tokens[0].Lemma = "զ"
	b.Tokens[1].Lemma = "գործ"
	b.Tokens[1].UPOS = "NOUN"

	if err := Merge(Pair{A: a, B: b}); err != nil {
		t.Fatal(err)
	}
	if a.Tokens[0].Lemma != "գործ" || a.Tokens[0].UPOS != "NOUN" {
		t.Errorf("got %s/%s", a.Tokens[0].Lemma, a.Tokens[0].UPOS)
	}
}

func TestMergePrefixCliticSplitInSecondaryMidSentence(t *testing.T) {
	// Same split, but with trailing tokens on both sides: the fused
	// token still takes the content word's annotations, not the
	// preposition's.
	a := mkSent("a1", "", "զգործ", "իմ")
	b := mkSent("b1", "", "զ", "գործ", "իմ")
	b.Tokens[0].Lemma = "զ"
	b.Tokens[0].UPOS = "ADP"
	b.Tokens[1].Lemma = "գործ"
	b.Tokens[1].UPOS = "NOUN"
	b.Tokens[2].Lemma = "իմ"

	if err := Merge(Pair{A: a, B: b}); err != nil {
		t.Fatal(err)
	}
	if a.Tokens[0].Lemma != "գործ" || a.Tokens[0].UPOS != "NOUN" {
		t.Errorf("fused = %s/%s", a.Tokens[0].Lemma, a.Tokens[0].UPOS)
	}
	if a.Tokens[1].Lemma != "իմ" {
		t.Errorf("tail = %s", a.Tokens[1].Lemma)
	}
}

func TestMergeIrreconcilable(t *testing.T) {
	a := mkSent("a1", "", "մի", "բան")
	b := mkSent("b1", "", "մի", "այլ")
	err := Merge(Pair{A: a, B: b})
	var irr *IrreconcilableError
	if !errors.As(err, &irr) {
		t.Fatalf("err = %v", err)
	}
	if irr.PosA != 1 || irr.FormA != "բան" || irr.FormB != "այլ" {
		t.Errorf("fault = %+v", irr)
	}
	// Primary untouched on failure.
	if a.Tokens[0].Lemma != "" {
		t.Error("merge modified the primary before failing")
	}
}

func TestMergeLengthMismatch(t *testing.T) {
	a := mkSent("a1", "", "մի")
	b := mkSent("b1", "", "մի", "բան")
	var irr *IrreconcilableError
	if err := Merge(Pair{A: a, B: b}); !errors.As(err, &irr) {
		t.Fatalf("err = %v", err)
	}
}
