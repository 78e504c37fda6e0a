package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/grabar/sentence"
)

// JSONRenderer writes sentences as JSON, one array element per
// sentence, for downstream tooling.
type JSONRenderer struct {
	W io.Writer
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type jsonToken struct {
	ID     string `json:"id"`
	Form   string `json:"form"`
	Lemma  string `json:"lemma,omitempty"`
	UPOS   string `json:"upos,omitempty"`
	XPOS   string `json:"xpos,omitempty"`
	Feats  string `json:"feats,omitempty"`
	Head   string `json:"head,omitempty"`
	Deprel string `json:"deprel,omitempty"`
	Misc   string `json:"misc,omitempty"`
}

type jsonSentence struct {
	SentID string      `json:"sent_id,omitempty"`
	Text   string      `json:"text,omitempty"`
	Tokens []jsonToken `json:"tokens"`
}

// Render serializes the corpus as a JSON array.
func (r *JSONRenderer) Render(corpus []*sentence.Sentence) error {
	out := make([]jsonSentence, 0, len(corpus))
	for _, s := range corpus {
		js := jsonSentence{
			SentID: s.SentID(),
			Text:   s.Text(),
			Tokens: make([]jsonToken, 0, len(s.Tokens)),
		}
		for _, t := range s.Tokens {
			if t.Malformed() {
				continue
			}
			jt := jsonToken{
				ID:     t.ID.String(),
				Form:   t.Form,
				Lemma:  t.Lemma,
				UPOS:   t.UPOS,
				XPOS:   t.XPOS,
				Deprel: t.Deprel,
			}
			if len(t.Feats) > 0 {
				jt.Feats = t.Feats.String()
			}
			if len(t.Misc) > 0 {
				jt.Misc = t.Misc.String()
			}
			if !t.Head.IsZero() {
				jt.Head = t.Head.String()
			}
			js.Tokens = append(js.Tokens, jt)
		}
		out = append(out, js)
	}
	enc := json.NewEncoder(r.W)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
