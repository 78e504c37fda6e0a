package sentence

// Token is a single row of a sentence: a word, a multiword placeholder, or,
// in lenient parsing mode, a malformed line carried through verbatim.
type Token struct {
	ID     ID
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  Tags
	Head   ID // zero value means no head; Root means sentence root
	Deprel string
	Deps   string
	Misc   Tags

	// Members is the atomic member count of a synthetic multiword
	// placeholder whose numeric range has not been assigned yet. It is
	// consumed by the renumber pass and never serialized.
	Members int

	// raw is the original input line, kept for byte-for-byte round-trip.
	// Any edit clears it.
	raw       string
	malformed bool
}

// Passthrough wraps a line the parser could not interpret. The token
// serializes back to the line unchanged and is skipped by edits.
func Passthrough(line string) *Token {
	return &Token{raw: line, malformed: true}
}

// Raw returns the original input line, or "" once the token was edited.
func (t *Token) Raw() string {
	return t.raw
}

// SetRaw records the original input line after parsing.
func (t *Token) SetRaw(line string) {
	t.raw = line
}

// MarkEdited drops the recorded input line so serialization reflects the
// current field values.
func (t *Token) MarkEdited() {
	t.raw = ""
}

// Malformed reports whether the token is a verbatim passthrough line.
func (t *Token) Malformed() bool {
	return t.malformed
}

// IsSpan reports whether the token is a multiword placeholder, either with
// an assigned range id or a pending synthetic one.
func (t *Token) IsSpan() bool {
	return t.ID.IsSpan() || t.Members > 0
}

// SpanMembers returns the atomic member count of a multiword placeholder.
func (t *Token) SpanMembers() int {
	if t.Members > 0 {
		return t.Members
	}
	return t.ID.Members()
}

// SpaceAfter reports whether the token is followed by a space in the
// surface text. MISC SpaceAfter=No turns it off.
func (t *Token) SpaceAfter() bool {
	v, ok := t.Misc.Get("SpaceAfter")
	return !ok || v != "No"
}

// Clone returns a deep copy.
func (t *Token) Clone() *Token {
	c := *t
	c.Feats = t.Feats.Clone()
	c.Misc = t.Misc.Clone()
	return &c
}
