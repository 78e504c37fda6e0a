// Package stat aggregates corpus statistics over sentences.
package stat

import (
	"github.com/revelaction/grabar/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	NumSpans              int
	NumMalformed          int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// UPOS and relation frequencies over the atomic tokens.
	POSCounts    map[string]int
	DeprelCounts map[string]int

	// Sentences violating the single root invariant, by root count.
	RootCountDis map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		POSCounts:            map[string]int{},
		DeprelCounts:         map[string]int{},
		RootCountDis:         map[int]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(corpus []*sentence.Sentence) {
	h.stats.NumSentences += len(corpus)

	for _, s := range corpus {
		atomic := s.Atomic()
		h.stats.NumTokens += len(atomic)
		h.stats.TokensPerSentenceDis[len(atomic)]++

		roots := 0
		for _, t := range s.Tokens {
			switch {
			case t.Malformed():
				h.stats.NumMalformed++
				continue
			case t.IsSpan():
				h.stats.NumSpans++
				continue
			}
			if t.UPOS != "" {
				h.stats.POSCounts[t.UPOS]++
			}
			if t.Deprel != "" {
				h.stats.DeprelCounts[t.Deprel]++
			}
			if t.Head.IsRoot() {
				roots++
			}
		}
		h.stats.RootCountDis[roots]++
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
