// Package proiel reads and writes the legacy upstream token-stream format:
// one XML-like attribute bag per token line, sentences closed by a
// "</sentence>" line. Attribute order and indentation of unedited lines
// are preserved verbatim.
package proiel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

// EndMarker closes a sentence block in the legacy format.
const EndMarker = "</sentence>"

// Attribute names of the legacy schema. Unknown attributes are carried in
// MISC under their literal names.
const (
	attrID       = "id"
	attrHead     = "head-id"
	attrRelation = "relation"
	attrLemma    = "lemma"
	attrForm     = "form"
	attrPOS      = "part-of-speech"
	attrFeats    = "FEAT"
	attrMorph    = "morphology"
	attrCitation = "citation-part"
	attrEmpty    = "empty-token-sort"
)

var (
	tokenRe = regexp.MustCompile(`<token\b`)
	attrRe  = regexp.MustCompile(`([-\w]+)="([^"]*)"`)
)

// Read parses a legacy stream into sentences. Token lines become tokens;
// any other line inside a block is carried through verbatim, in order.
func Read(r io.Reader) ([]*sentence.Sentence, error) {
	var (
		sents []*sentence.Sentence
		cur   *sentence.Sentence
	)

	flush := func() {
		if cur != nil && (len(cur.Tokens) > 0 || len(cur.Comments) > 0) {
			sents = append(sents, cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == EndMarker {
			flush()
			continue
		}
		if cur == nil {
			cur = &sentence.Sentence{}
		}
		if !tokenRe.MatchString(line) {
			if len(cur.Tokens) == 0 {
				cur.Comments = append(cur.Comments, line)
			} else {
				cur.Tokens = append(cur.Tokens, sentence.Passthrough(line))
			}
			continue
		}
		tok, err := parseLine(line)
		if err != nil {
			// Unparseable token lines are never dropped.
			cur.Tokens = append(cur.Tokens, sentence.Passthrough(line))
			continue
		}
		tok.SetRaw(line)
		cur.Tokens = append(cur.Tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading legacy stream: %w", err)
	}
	flush()
	return sents, nil
}

// ReadFile reads a whole legacy file.
func ReadFile(path string) ([]*sentence.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func parseLine(line string) (*sentence.Token, error) {
	tok := &sentence.Token{}
	for _, m := range attrRe.FindAllStringSubmatch(line, -1) {
		name, value := m[1], m[2]
		switch name {
		case attrID:
			id, err := sentence.ParseID(value)
			if err != nil {
				return nil, err
			}
			tok.ID = id
		case attrHead:
			if value == "" || value == "_" {
				continue
			}
			head, err := sentence.ParseID(value)
			if err != nil {
				return nil, err
			}
			tok.Head = head
		case attrRelation:
			tok.Deprel = value
		case attrLemma:
			tok.Lemma = value
		case attrForm:
			tok.Form = value
		case attrPOS:
			tok.XPOS = value
		case attrFeats:
			tok.Feats = sentence.ParseTags(value)
		default:
			// morphology, citation-part, empty-token-sort and anything
			// else ride along in MISC under their literal names.
			tok.Misc = tok.Misc.Set(name, value)
		}
	}
	if tok.ID.IsZero() {
		return nil, fmt.Errorf("token line without id")
	}
	return tok, nil
}

// FormatToken serializes one token line. Unedited tokens reproduce their
// input line exactly; edited tokens are written in canonical attribute
// order.
func FormatToken(t *sentence.Token) string {
	if raw := t.Raw(); raw != "" {
		return raw
	}

	var b strings.Builder
	b.WriteString("<token ")
	attr := func(name, value string) {
		fmt.Fprintf(&b, "%s=%q ", name, value)
	}

	attr(attrID, t.ID.String())
	switch {
	case t.Head.IsZero() && t.ID.IsSpan():
		attr(attrHead, "_")
	case t.Head.IsZero():
		attr(attrHead, "0")
	default:
		attr(attrHead, t.Head.String())
	}
	if t.Deprel != "" {
		attr(attrRelation, t.Deprel)
	}
	if t.Lemma != "" {
		attr(attrLemma, t.Lemma)
	}
	if t.Form != "" {
		attr(attrForm, t.Form)
	}
	if t.XPOS != "" {
		attr(attrPOS, t.XPOS)
	}
	if len(t.Feats) > 0 {
		attr(attrFeats, t.Feats.String())
	}
	extras := append([]string(nil), t.Misc...)
	sort.Strings(extras)
	for _, item := range extras {
		if k, v, ok := strings.Cut(item, "="); ok {
			attr(k, v)
		}
	}
	return strings.TrimRight(b.String(), " ") + " />"
}

// Write serializes sentences, each block closed by the end marker.
func Write(w io.Writer, sents []*sentence.Sentence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sents {
		for _, c := range s.Comments {
			if _, err := bw.WriteString(c + "\n"); err != nil {
				return err
			}
		}
		for _, t := range s.Tokens {
			if _, err := bw.WriteString(FormatToken(t) + "\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(EndMarker + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile serializes sentences to a file.
func WriteFile(path string, sents []*sentence.Sentence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sents); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
