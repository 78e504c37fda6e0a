// Package conllu reads and writes CoNLL-U files: ten tab-separated columns
// per token line, "#" comment lines, sentences delimited by a blank line.
//
// Parsing keeps every well-formed input line verbatim so that serializing
// an unedited sentence reproduces the input byte for byte.
package conllu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

const numFields = 10

// Mode selects the handling of malformed token lines.
type Mode int

const (
	// Lenient passes malformed lines through unchanged.
	Lenient Mode = iota
	// Strict drops malformed lines and reports them as faults.
	Strict
)

// Fault reports a line that could not be parsed. In Lenient mode the line
// is still carried through the sentence; in Strict mode it is dropped.
type Fault struct {
	Line int // 1-based line number in the input
	Text string
	Err  error
}

func (f Fault) String() string {
	return fmt.Sprintf("line %d: %v", f.Line, f.Err)
}

// Read parses a CoNLL-U stream into sentences. Malformed lines never
// corrupt neighboring lines; they are passed through or skipped per mode,
// and reported either way.
func Read(r io.Reader, mode Mode) ([]*sentence.Sentence, []Fault, error) {
	var (
		sents  []*sentence.Sentence
		cur    *sentence.Sentence
		faults []Fault
	)

	flush := func() {
		if cur != nil && (len(cur.Tokens) > 0 || len(cur.Comments) > 0) {
			sents = append(sents, cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if cur == nil {
			cur = &sentence.Sentence{}
		}
		if strings.HasPrefix(line, "#") {
			cur.Comments = append(cur.Comments, line)
			continue
		}

		tok, err := parseLine(line)
		if err != nil {
			faults = append(faults, Fault{Line: lineNo, Text: line, Err: err})
			if mode == Lenient {
				cur.Tokens = append(cur.Tokens, sentence.Passthrough(line))
			}
			continue
		}
		tok.SetRaw(line)
		cur.Tokens = append(cur.Tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, faults, fmt.Errorf("reading conllu: %w", err)
	}
	flush()
	return sents, faults, nil
}

// ReadFile reads a whole CoNLL-U file.
func ReadFile(path string, mode Mode) ([]*sentence.Sentence, []Fault, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f, mode)
}

// parseLine parses one token line. Lines with 2 to 9 columns are padded
// with "_", lines with more than 10 are truncated. A line without tabs or
// with an unparseable ID column is malformed.
func parseLine(line string) (*sentence.Token, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 2 {
		return nil, fmt.Errorf("expected tab-separated columns")
	}
	for len(cols) < numFields {
		cols = append(cols, "_")
	}
	cols = cols[:numFields]

	id, err := sentence.ParseID(cols[0])
	if err != nil {
		return nil, err
	}
	if id.IsZero() {
		return nil, fmt.Errorf("missing id column")
	}
	head, err := parseHead(cols[6])
	if err != nil {
		return nil, err
	}

	return &sentence.Token{
		ID:     id,
		Form:   unquoteField(cols[1]),
		Lemma:  unquoteField(cols[2]),
		UPOS:   unquoteField(cols[3]),
		XPOS:   unquoteField(cols[4]),
		Feats:  sentence.ParseTags(cols[5]),
		Head:   head,
		Deprel: unquoteField(cols[7]),
		Deps:   unquoteField(cols[8]),
		Misc:   sentence.ParseTags(cols[9]),
	}, nil
}

// parseHead parses the HEAD column: "_" means no head, "0" the root.
func parseHead(s string) (sentence.ID, error) {
	if s == "" || s == "_" {
		return sentence.ID{}, nil
	}
	id, err := sentence.ParseID(s)
	if err != nil {
		return sentence.ID{}, fmt.Errorf("invalid head: %w", err)
	}
	if id.IsSpan() {
		return sentence.ID{}, fmt.Errorf("invalid head %q: range", s)
	}
	return id, nil
}

func unquoteField(s string) string {
	if s == "_" {
		return ""
	}
	return s
}

func quoteField(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

// FormatToken serializes one token line. Unedited tokens reproduce their
// input line exactly.
func FormatToken(t *sentence.Token) string {
	if raw := t.Raw(); raw != "" {
		return raw
	}
	head := "_"
	if !t.Head.IsZero() {
		head = t.Head.String()
	}
	fields := []string{
		t.ID.String(),
		quoteField(t.Form),
		quoteField(t.Lemma),
		quoteField(t.UPOS),
		quoteField(t.XPOS),
		t.Feats.String(),
		head,
		quoteField(t.Deprel),
		quoteField(t.Deps),
		t.Misc.String(),
	}
	return strings.Join(fields, "\t")
}

// Write serializes sentences, each block followed by a blank line.
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
		if _, err := bw.WriteString("\n"); err != nil {
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
