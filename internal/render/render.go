// Package render writes the artifacts of an analysis run: CSV and JSON
// tables, DOT and JSON word graphs with seeded layouts, and SVG bar charts.
// Rendering owns presentation only; it never changes a table.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/graph"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/logger"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

type Renderer struct {
	OutputDir  string
	Seed       int64
	Iterations int
	Charts     bool
	logger     *slog.Logger
}

func New(cfg config.RenderConfig) *Renderer {
	return &Renderer{
		OutputDir:  cfg.OutputDir,
		Seed:       cfg.Seed,
		Iterations: cfg.Iterations,
		Charts:     cfg.Charts,
		logger:     logger.WithComponent(slog.Default(), "renderer"),
	}
}

// LayoutGraph is the JSON form of a word graph with node positions.
type LayoutGraph struct {
	*graph.Graph
	Seed      int64      `json:"seed"`
	Positions []Position `json:"positions"`
}

// Render writes every artifact of res into OutputDir and returns the
// written paths in write order.
func (r *Renderer) Render(res *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", r.OutputDir, err)
	}
	var written []string
	write := func(name string, fn func(w io.Writer) error) error {
		path := filepath.Join(r.OutputDir, name)
		if err := writeFile(path, fn); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	steps := []struct {
		name string
		fn   func(w io.Writer) error
	}{
		{"counts.csv", func(w io.Writer) error { return WriteCountsCSV(w, res.Counts) }},
		{"tfidf.csv", func(w io.Writer) error { return WriteTfIdfCSV(w, res.TfIdf) }},
		{"tfidf_top.csv", func(w io.Writer) error { return WriteTfIdfCSV(w, res.TopTfIdf) }},
		{"negations.csv", func(w io.Writer) error { return WriteNegationsCSV(w, res.Negations) }},
		{"summary.json", func(w io.Writer) error { return WriteJSON(w, res) }},
	}
	for _, step := range steps {
		if err := write(step.name, step.fn); err != nil {
			return written, err
		}
	}

	for _, g := range res.Graphs {
		base := "graph_" + fileSafe(string(g.Group))
		if err := write(base+".dot", func(w io.Writer) error { return graph.WriteDOT(w, g) }); err != nil {
			return written, err
		}
		lg := LayoutGraph{Graph: g, Seed: r.Seed, Positions: Layout(g, r.Seed, r.Iterations)}
		if err := write(base+".json", func(w io.Writer) error { return WriteJSON(w, lg) }); err != nil {
			return written, err
		}
	}

	if !r.Charts {
		return written, nil
	}
	for _, group := range res.Groups {
		rows := aggregate.RowsFor(res.TopTfIdf, group)
		if len(rows) == 0 {
			r.logger.Info("skipping empty tf-idf chart", "group", group)
			continue
		}
		bars := make([]Bar, len(rows))
		for i, row := range rows {
			bars[i] = Bar{Label: row.Term, Value: row.TfIdf}
		}
		name := "tfidf_" + fileSafe(string(group)) + ".svg"
		title := fmt.Sprintf("Highest tf-idf bigrams, group %s", group)
		if err := write(name, func(w io.Writer) error { return BarChartSVG(w, title, bars) }); err != nil {
			return written, err
		}
	}
	if len(res.TopNegations) == 0 {
		r.logger.Info("skipping empty negation charts")
		return written, nil
	}
	title := "Words preceded by a negation, by contribution"
	if err := write("negations.svg", func(w io.Writer) error {
		return BarChartSVG(w, title, negationBars(res.TopNegations))
	}); err != nil {
		return written, err
	}

	// one chart per negation word, each capped at the combined chart's size
	split := sentiment.ByNegation(res.Negations)
	words := make([]string, 0, len(split))
	for word := range split {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		bars := negationBars(sentiment.Top(split[word], len(res.TopNegations)))
		name := "negations_" + fileSafe(word) + ".svg"
		title := fmt.Sprintf("Words preceded by %q, by contribution", word)
		if err := write(name, func(w io.Writer) error { return BarChartSVG(w, title, bars) }); err != nil {
			return written, err
		}
	}
	return written, nil
}

func negationBars(scores []sentiment.NegatedWordScore) []Bar {
	bars := make([]Bar, len(scores))
	for i, s := range scores {
		bars[i] = Bar{Label: s.NegationWord + " " + s.Word2, Value: float64(s.Contribution)}
	}
	return bars
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func fileSafe(name string) string {
	name = unsafeName.ReplaceAllString(name, "_")
	if name == "" {
		return "all"
	}
	return name
}
