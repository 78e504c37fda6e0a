// Package render prints sentences for the terminal: surface text with
// optional highlighting, and an indented dependency tree view.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

type Renderer struct {
	W io.Writer

	HasColor bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// Sentence prints the surface text on one line, honoring adjacency
// marks. Tokens whose id is in highlight are colored.
func (r *Renderer) Sentence(s *sentence.Sentence, highlight map[sentence.ID]bool) {
	var b strings.Builder
	skip := 0
	for _, t := range s.Tokens {
		if t.Malformed() {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if t.IsSpan() {
			skip = t.SpanMembers()
		}
		b.WriteString(r.form(t, highlight))
		if t.SpaceAfter() {
			b.WriteByte(' ')
		}
	}
	fmt.Fprintln(r.W, strings.TrimRight(b.String(), " "))
}

// Tree prints the dependency tree, one token per line, children
// indented under their head:
//
//	ասէ VERB root
//	├── տէր NOUN nsubj
//	└── ցնա PRON obl
func (r *Renderer) Tree(s *sentence.Sentence) {
	x := sentence.NewIndex(s)
	visited := map[sentence.ID]bool{}
	for _, root := range x.Roots() {
		r.subtree(x, root, "", true, true, visited)
	}
	// Tokens unreachable from a root (dangling heads, cycles) are still
	// shown, flat, so nothing disappears from the view.
	for _, t := range s.Atomic() {
		if !visited[t.ID] {
			fmt.Fprintf(r.W, "%s %s\n", r.label(t), r.color(Red, "unreachable"))
		}
	}
}

func (r *Renderer) subtree(x *sentence.Index, t *sentence.Token, indent string, isRoot, isLast bool, visited map[sentence.ID]bool) {
	if visited[t.ID] {
		return
	}
	visited[t.ID] = true

	if isRoot {
		fmt.Fprintf(r.W, "%s\n", r.label(t))
	} else {
		branch := "├── "
		if isLast {
			branch = "└── "
		}
		fmt.Fprintf(r.W, "%s%s%s\n", indent, branch, r.label(t))
		if isLast {
			indent += "    "
		} else {
			indent += "│   "
		}
	}

	deps := x.Dependents(t.ID)
	for i, d := range deps {
		r.subtree(x, d, indent, false, i == len(deps)-1, visited)
	}
}

func (r *Renderer) label(t *sentence.Token) string {
	rel := t.Deprel
	if rel == "" {
		rel = "_"
	}
	return fmt.Sprintf("%s %s %s %s",
		r.color(Grey256, t.ID.String()),
		t.Form,
		r.color(Yellow256, t.UPOS),
		r.color(Green256, rel))
}

func (r *Renderer) form(t *sentence.Token, highlight map[sentence.ID]bool) string {
	if highlight[t.ID] {
		return r.color(Green256, t.Form)
	}
	return t.Form
}

func (r *Renderer) color(code, s string) string {
	if !r.HasColor || s == "" {
		return s
	}
	return code + s + Off
}
