package sentence

import (
	"strings"
)

// Comment keys recognized in sentence metadata.
const (
	KeySentID        = "sent_id"
	KeyText          = "text"
	KeyTranslated    = "translated_text"
	KeyTransliterate = "transliterated_text"
	KeyCite          = "cite"
)

// Sentence is an ordered list of tokens plus the comment lines that precede
// them. Comment lines are kept verbatim and in order; token order matches
// surface/citation order.
type Sentence struct {
	Comments []string
	Tokens   []*Token

	tempSeq int
}

// NextTemp allocates a fresh temporary id, unique within the sentence until
// the next renumber pass replaces it.
func (s *Sentence) NextTemp() ID {
	s.tempSeq++
	return ID{kind: kindTemp, num: s.tempSeq}
}

// Comment returns the value of a "# key = value" comment line.
func (s *Sentence) Comment(key string) (string, bool) {
	for _, line := range s.Comments {
		k, v, ok := splitComment(line)
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// SetComment replaces the value of a keyed comment line, appending a new
// line when the key is not present yet.
func (s *Sentence) SetComment(key, value string) {
	for i, line := range s.Comments {
		k, _, ok := splitComment(line)
		if ok && k == key {
			s.Comments[i] = "# " + key + " = " + value
			return
		}
	}
	s.Comments = append(s.Comments, "# "+key+" = "+value)
}

// SentID returns the sent_id comment value, or "".
func (s *Sentence) SentID() string {
	v, _ := s.Comment(KeySentID)
	return v
}

// Text returns the text comment value, or "".
func (s *Sentence) Text() string {
	v, _ := s.Comment(KeyText)
	return v
}

// Atomic returns the non-span, non-passthrough tokens in order.
func (s *Sentence) Atomic() []*Token {
	out := make([]*Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Malformed() || t.IsSpan() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Position returns the index of the token with the given id in Tokens,
// or -1.
func (s *Sentence) Position(id ID) int {
	for i, t := range s.Tokens {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy, used as the immutable pre-edit snapshot of a
// rule pass.
func (s *Sentence) Clone() *Sentence {
	c := &Sentence{tempSeq: s.tempSeq}
	c.Comments = append([]string(nil), s.Comments...)
	c.Tokens = make([]*Token, len(s.Tokens))
	for i, t := range s.Tokens {
		c.Tokens[i] = t.Clone()
	}
	return c
}

func splitComment(line string) (key, value string, ok bool) {
	rest, found := strings.CutPrefix(line, "#")
	if !found {
		return "", "", false
	}
	k, v, found := strings.Cut(rest, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}
