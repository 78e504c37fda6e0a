package sentence

import (
	"fmt"
	"strconv"
	"strings"
)

type idKind uint8

const (
	kindNone idKind = iota
	kindNum
	kindRange
	kindTemp
	kindSpanFirst
)

// An ID identifies a token within a sentence. It is either a plain numeric
// id, a hyphenated range "start-end" covering a multiword span, or a
// temporary id handed out by Sentence.NextTemp and replaced by the next
// renumber pass. The zero value is "no id" and doubles as the undefined
// head marker.
type ID struct {
	kind idKind
	num  int
	end  int
}

// Num returns a plain numeric id. Num(0) is the root head marker.
func Num(n int) ID {
	return ID{kind: kindNum, num: n}
}

// Span returns a hyphenated range id covering tokens start..end.
func Span(start, end int) ID {
	return ID{kind: kindRange, num: start, end: end}
}

// SpanFirst is a head placeholder meaning "the first atomic member of the
// multiword span this token belongs to". It is resolved during the renumber
// pass, once real ids are known.
func SpanFirst() ID {
	return ID{kind: kindSpanFirst}
}

// Root is the head marker of the sentence root.
var Root = Num(0)

// ParseID parses a token id column: a decimal integer or a range "a-b".
func ParseID(s string) (ID, error) {
	if s == "" || s == "_" {
		return ID{}, nil
	}
	if a, b, ok := strings.Cut(s, "-"); ok {
		start, err := strconv.Atoi(a)
		if err != nil {
			return ID{}, fmt.Errorf("invalid range id %q: %w", s, err)
		}
		end, err := strconv.Atoi(b)
		if err != nil {
			return ID{}, fmt.Errorf("invalid range id %q: %w", s, err)
		}
		if end < start {
			return ID{}, fmt.Errorf("invalid range id %q: end before start", s)
		}
		return Span(start, end), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return Num(n), nil
}

// IsZero reports whether the id is unset. For a head this means "no head".
func (id ID) IsZero() bool {
	return id.kind == kindNone
}

// IsSpan reports whether the id is a hyphenated range.
func (id ID) IsSpan() bool {
	return id.kind == kindRange
}

// IsTemp reports whether the id is a temporary, not yet renumbered.
func (id ID) IsTemp() bool {
	return id.kind == kindTemp
}

// IsSpanFirst reports whether the id is the span-first head placeholder.
func (id ID) IsSpanFirst() bool {
	return id.kind == kindSpanFirst
}

// IsRoot reports whether the id is the root head marker.
func (id ID) IsRoot() bool {
	return id.kind == kindNum && id.num == 0
}

// First returns the numeric id, or the start of a range.
func (id ID) First() int {
	return id.num
}

// Last returns the numeric id, or the end of a range.
func (id ID) Last() int {
	if id.kind == kindRange {
		return id.end
	}
	return id.num
}

// Members returns how many atomic tokens a range id covers. Non-range ids
// cover one.
func (id ID) Members() int {
	if id.kind == kindRange {
		return id.end - id.num + 1
	}
	return 1
}

func (id ID) String() string {
	switch id.kind {
	case kindNone:
		return "_"
	case kindRange:
		return strconv.Itoa(id.num) + "-" + strconv.Itoa(id.end)
	case kindTemp:
		return fmt.Sprintf("tmp:%d", id.num)
	case kindSpanFirst:
		return "tmp:span-first"
	default:
		return strconv.Itoa(id.num)
	}
}
