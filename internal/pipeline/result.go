package pipeline

import (
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/graph"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
)

// Result holds every table of one run. Counts and TfIdf are built from the
// stopword-filtered n-grams; Negations from the unfiltered bigrams. RunID
// is left out of the JSON form so repeated runs encode identically.
type Result struct {
	RunID        string                       `json:"-"`
	Groups       []dataset.Group              `json:"groups"`
	Stats        Stats                        `json:"stats"`
	Counts       []aggregate.Count            `json:"-"`
	BigramCounts []aggregate.Count            `json:"-"`
	TfIdf        []aggregate.TfIdfRow         `json:"-"`
	TopTfIdf     []aggregate.TfIdfRow         `json:"top_tf_idf"`
	Negations    []sentiment.NegatedWordScore `json:"-"`
	TopNegations []sentiment.NegatedWordScore `json:"top_negations"`
	Graphs       []*graph.Graph               `json:"-"`
}

type Stats struct {
	RecordsLoaded   int `json:"records_loaded"`
	RecordsDropped  int `json:"records_dropped"`
	RecordsKept     int `json:"records_kept"`
	NGrams          int `json:"ngrams"`
	ContentNGrams   int `json:"content_ngrams"`
	Bigrams         int `json:"bigrams"`
	NegatedBigrams  int `json:"negated_bigrams"`
	ScoredNegations int `json:"scored_negations"`
}

// Graph returns the word graph of group, or nil.
func (r *Result) Graph(group dataset.Group) *graph.Graph {
	for _, g := range r.Graphs {
		if g.Group == group {
			return g
		}
	}
	return nil
}
