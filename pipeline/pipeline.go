// Package pipeline runs ordered transformation stages over a corpus,
// one sentence at a time. A stage failure on a sentence is recorded as
// a fault and the run continues; faults are reported with counts and
// offending sentence ids at the end of the run.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/revelaction/grabar/match"
	"github.com/revelaction/grabar/rules"
	"github.com/revelaction/grabar/sentence"
)

// Fault kinds, as reported in the end-of-run summary.
const (
	FaultMalformed      = "malformed-line"
	FaultDangling       = "dangling-head"
	FaultAmbiguous      = "ambiguous-rule"
	FaultIrreconcilable = "irreconcilable-merge"
	FaultStage          = "stage-error"
)

// Stage transforms one sentence. A returned error is recorded as a
// fault for that sentence; it never aborts the corpus.
type Stage interface {
	Name() string
	Run(s *sentence.Sentence, rep *Report) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(s *sentence.Sentence, rep *Report) error
}

func (sf StageFunc) Name() string { return sf.StageName }

func (sf StageFunc) Run(s *sentence.Sentence, rep *Report) error {
	return sf.Fn(s, rep)
}

// Fault is one recorded problem, tied to the stage and sentence that
// produced it.
type Fault struct {
	Kind   string
	Stage  string
	SentID string
	Detail string
}

// Report collects faults over a run.
type Report struct {
	faults []Fault
}

// Add records a fault.
func (r *Report) Add(f Fault) {
	r.faults = append(r.faults, f)
}

// Faults returns all recorded faults in order.
func (r *Report) Faults() []Fault {
	return r.faults
}

// Empty reports whether the run was clean.
func (r *Report) Empty() bool {
	return len(r.faults) == 0
}

// Counts returns the number of faults per kind.
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.faults {
		counts[f.Kind]++
	}
	return counts
}

// Write prints the end-of-run summary: per-kind counts followed by the
// offending sentence ids.
func (r *Report) Write(w io.Writer) error {
	if r.Empty() {
		_, err := fmt.Fprintln(w, "no faults")
		return err
	}
	counts := r.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		if _, err := fmt.Fprintf(w, "%s: %d\n", k, counts[k]); err != nil {
			return err
		}
	}
	for _, f := range r.faults {
		id := f.SentID
		if id == "" {
			id = "?"
		}
		if _, err := fmt.Fprintf(w, "  [%s] %s %s: %s\n", f.Kind, f.Stage, id, f.Detail); err != nil {
			return err
		}
	}
	return nil
}

// Runner applies its stages to every sentence of a corpus, in order.
// Sentences are independent; processing is synchronous and batch
// oriented.
type Runner struct {
	Stages []Stage

	// Progress, when set, is called after each finished sentence.
	Progress func(done, total int)
}

// Run processes the corpus in place and returns the fault report.
func (r *Runner) Run(corpus []*sentence.Sentence) *Report {
	rep := &Report{}
	for i, s := range corpus {
		for _, st := range r.Stages {
			if err := st.Run(s, rep); err != nil {
				rep.Add(Fault{
					Kind:   classify(err),
					Stage:  st.Name(),
					SentID: s.SentID(),
					Detail: err.Error(),
				})
			}
		}
		if r.Progress != nil {
			r.Progress(i+1, len(corpus))
		}
	}
	return rep
}

func classify(err error) string {
	var amb *rules.AmbiguousError
	if errors.As(err, &amb) {
		return FaultAmbiguous
	}
	var irr *match.IrreconcilableError
	if errors.As(err, &irr) {
		return FaultIrreconcilable
	}
	return FaultStage
}
