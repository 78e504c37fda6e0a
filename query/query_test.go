package query

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/revelaction/grabar/render"
	"github.com/revelaction/grabar/sentence"
	"github.com/revelaction/grabar/storage"
)

type memGlosses []storage.Gloss

func (m memGlosses) All() ([]storage.Gloss, error) { return m, nil }

func (m memGlosses) Lookup(lemma, pos string) ([]storage.Gloss, error) {
	var out []storage.Gloss
	for _, g := range m {
		if g.Lemma == lemma {
			out = append(out, g)
		}
	}
	return out, nil
}

func newTestHandler(out *bytes.Buffer) *Handler {
	s := &sentence.Sentence{Tokens: []*sentence.Token{
		{ID: sentence.Num(1), Form: "տէր", Lemma: "տէր", UPOS: "NOUN", Head: sentence.Num(2), Deprel: "nsubj"},
		{ID: sentence.Num(2), Form: "ասէ", Lemma: "ասեմ", UPOS: "VERB", Head: sentence.Root, Deprel: "root"},
	}}
	s.SetComment(sentence.KeySentID, "MATT_1.1")
	glosses := memGlosses{{Lemma: "տէր", POS: "NOUN", Gloss: "lord"}}
	return NewHandler([]*sentence.Sentence{s}, glosses, render.NewRenderer(out), out)
}

func TestEvalSentAndTree(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(&out)

	if err := h.eval("sent MATT_1.1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "տէր ասէ") {
		t.Errorf("sent output = %q", out.String())
	}

	out.Reset()
	if err := h.eval("tree MATT_1.1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "└── 1 տէր") {
		t.Errorf("tree output = %q", out.String())
	}

	if err := h.eval("sent nope"); err == nil {
		t.Error("want error for unknown sentence")
	}
}

func TestEvalFind(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(&out)
	if err := h.eval("find ասեմ"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "MATT_1.1") || !strings.Contains(out.String(), "1 sentences") {
		t.Errorf("find output = %q", out.String())
	}
}

func TestEvalGloss(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(&out)
	if err := h.eval("gloss տէր"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "lord") {
		t.Errorf("gloss output = %q", out.String())
	}
}

func TestEvalQuit(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(&out)
	if err := h.eval("quit"); !errors.Is(err, errQuit) {
		t.Fatalf("err = %v", err)
	}
	if err := h.eval("bogus"); err == nil {
		t.Error("want error for unknown command")
	}
}
