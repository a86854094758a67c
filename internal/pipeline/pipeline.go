// Package pipeline runs the profile analysis end to end: load, label,
// tokenize, filter, count, score and build graphs. Each stage takes the
// previous stage's table and returns a new one; nothing is shared between
// runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/graph"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/stopwords"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/tracing"
)

// Options are the analysis parameters of one run.
type Options struct {
	Rule      dataset.LabelRule
	NGram     int
	StripHTML bool
	TopN      int
	TopK      int
	Threshold int
	Negations []string
}

// OptionsFromConfig maps the config sections to run options.
func OptionsFromConfig(cfg *config.Config) Options {
	negations := cfg.Sentiment.Negations
	if len(negations) == 0 {
		negations = sentiment.DefaultNegations
	}
	return Options{
		Rule:      dataset.RuleFromConfig(cfg.Label),
		NGram:     cfg.Tokenizer.NGram,
		StripHTML: cfg.Tokenizer.StripHTML,
		TopN:      cfg.Analysis.TopN,
		TopK:      cfg.Sentiment.TopK,
		Threshold: cfg.Graph.Threshold,
		Negations: negations,
	}
}

type Pipeline struct {
	source    dataset.Source
	stopwords *stopwords.Set
	lexicon   sentiment.Lexicon
	opts      Options
	metrics   *metrics.Metrics
}

func New(source dataset.Source, stops *stopwords.Set, lex sentiment.Lexicon, opts Options, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{
		source:    source,
		stopwords: stops,
		lexicon:   lex,
		opts:      opts,
		metrics:   m,
	}
}

// LoadResources reads the stopword list and lexicon named in cfg, falling
// back to the embedded ones. The embedded lexicon is a sample, so using it
// is logged as a warning.
func LoadResources(cfg *config.Config) (*stopwords.Set, sentiment.Lexicon, error) {
	stops := stopwords.Default()
	if cfg.Stopwords.Path != "" {
		s, err := stopwords.LoadFile(cfg.Stopwords.Path)
		if err != nil {
			return nil, nil, err
		}
		stops = s
	}
	lex := sentiment.DefaultLexicon()
	if cfg.Sentiment.LexiconPath == "" {
		slog.Warn("using the embedded sample lexicon; set sentiment.lexiconPath to the full AFINN-111 list",
			"entries", len(lex))
	} else {
		l, err := sentiment.LoadLexicon(cfg.Sentiment.LexiconPath)
		if err != nil {
			return nil, nil, err
		}
		lex = l
	}
	return stops, lex, nil
}

func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.metrics
}

// Run loads the dataset once and computes every table. The span tree is
// logged whether or not the run succeeds.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	ctx, root := tracing.StartSpan(ctx, "pipeline", runID)
	log := logger.WithComponent(logger.FromContext(ctx), "pipeline")
	log.Info("analysis run starting",
		"ngram", p.opts.NGram,
		"threshold", p.opts.Threshold,
		"top_n", p.opts.TopN,
	)

	var records []dataset.Record
	var loadErr error
	p.runStage(ctx, "load", func(span *tracing.Span) {
		records, loadErr = p.source.Load(ctx)
		span.Fail(loadErr)
		span.Rows(len(records), len(records))
	})
	if loadErr != nil {
		root.Fail(loadErr)
		root.End()
		root.Log(log)
		log.Error("analysis run failed", "stage", "load", "error", loadErr)
		return nil, fmt.Errorf("loading dataset: %w", loadErr)
	}
	p.metrics.RecordsTotal.WithLabelValues("loaded").Add(float64(len(records)))

	result := Analyze(ctx, records, p.stopwords, p.lexicon, p.opts, p.runStage)
	result.RunID = runID

	p.metrics.RecordsTotal.WithLabelValues("dropped_incomplete").Add(float64(result.Stats.RecordsDropped))
	p.metrics.RecordsTotal.WithLabelValues("kept").Add(float64(result.Stats.RecordsKept))
	p.metrics.NGramsTotal.WithLabelValues("tokenized").Add(float64(result.Stats.NGrams))
	p.metrics.NGramsTotal.WithLabelValues("content").Add(float64(result.Stats.ContentNGrams))
	p.metrics.NGramsTotal.WithLabelValues("bigrams").Add(float64(result.Stats.Bigrams))
	p.metrics.FilteredTotal.WithLabelValues("incomplete").Add(float64(result.Stats.RecordsDropped))
	p.metrics.FilteredTotal.WithLabelValues("stopword").Add(float64(result.Stats.NGrams - result.Stats.ContentNGrams))
	p.metrics.FilteredTotal.WithLabelValues("lexicon_miss").Add(float64(result.Stats.NegatedBigrams - result.Stats.ScoredNegations))
	for _, g := range result.Graphs {
		p.metrics.GraphNodes.WithLabelValues(string(g.Group)).Set(float64(len(g.Nodes)))
		p.metrics.GraphEdges.WithLabelValues(string(g.Group)).Set(float64(len(g.Edges)))
	}

	root.Rows(result.Stats.RecordsLoaded, result.Stats.RecordsKept)
	root.End()
	root.Log(log)
	log.Info("analysis run finished",
		"records", result.Stats.RecordsKept,
		"ngrams", result.Stats.NGrams,
		"terms", len(result.Counts),
		"negations", len(result.Negations),
		"duration_ms", root.Duration.Milliseconds(),
	)
	return result, nil
}

// StageFunc runs fn as a named stage. Stages after loading cannot fail;
// they report what they did through the span.
type StageFunc func(ctx context.Context, name string, fn func(span *tracing.Span))

func (p *Pipeline) runStage(ctx context.Context, name string, fn func(span *tracing.Span)) {
	_, span := tracing.StartChildSpan(ctx, name)
	start := time.Now()
	fn(span)
	p.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	span.End()
}

func untimedStage(ctx context.Context, name string, fn func(span *tracing.Span)) {
	_, span := tracing.StartChildSpan(ctx, name)
	fn(span)
	span.End()
}

// Analyze runs every stage after loading. It never fails: empty input
// produces empty tables and graphs. stage may be nil.
func Analyze(ctx context.Context, records []dataset.Record, stops *stopwords.Set, lex sentiment.Lexicon, opts Options, stage StageFunc) *Result {
	if stage == nil {
		stage = untimedStage
	}
	if opts.NGram < 1 {
		opts.NGram = 2
	}
	log := logger.WithComponent(logger.FromContext(ctx), "pipeline")
	res := &Result{Groups: opts.Rule.Groups()}
	res.Stats.RecordsLoaded = len(records)

	var labeled []dataset.LabeledRecord
	stage(ctx, "label", func(span *tracing.Span) {
		kept, dropped := dataset.DropIncomplete(records)
		labeled = dataset.Label(kept, opts.Rule)
		res.Stats.RecordsDropped = dropped
		res.Stats.RecordsKept = len(labeled)
		span.Rows(len(records), len(labeled))
		log.Debug("incomplete records dropped", "dropped", dropped, "kept", len(labeled))
	})

	var grams, bigrams []tokenizer.NGram
	stage(ctx, "tokenize", func(span *tracing.Span) {
		grams = tokenizer.Tokenize(labeled, tokenizer.Options{N: opts.NGram, StripHTML: opts.StripHTML})
		bigrams = grams
		if opts.NGram != 2 {
			bigrams = tokenizer.Bigrams(labeled, opts.StripHTML)
		}
		res.Stats.NGrams = len(grams)
		res.Stats.Bigrams = len(bigrams)
		span.Rows(len(labeled), len(grams))
		span.SetAttr("n", opts.NGram)
	})

	var content, contentBigrams []tokenizer.NGram
	stage(ctx, "stopwords", func(span *tracing.Span) {
		content = stops.Filter(grams)
		contentBigrams = content
		if opts.NGram != 2 {
			contentBigrams = stops.Filter(bigrams)
		}
		res.Stats.ContentNGrams = len(content)
		span.Rows(len(grams), len(content))
		span.SetAttr("stopwords", stops.Len())
	})

	stage(ctx, "aggregate", func(span *tracing.Span) {
		res.Counts = aggregate.CountByGroup(content)
		res.TfIdf = aggregate.TfIdf(res.Counts, res.Groups)
		res.TopTfIdf = aggregate.TopPerGroup(res.TfIdf, opts.TopN)
		res.BigramCounts = res.Counts
		if opts.NGram != 2 {
			res.BigramCounts = aggregate.CountByGroup(contentBigrams)
		}
		span.Rows(len(content), len(res.Counts))
	})

	stage(ctx, "sentiment", func(span *tracing.Span) {
		// Negations are stopwords, so scoring reads the unfiltered bigrams.
		res.Negations = sentiment.ScoreNegations(bigrams, lex, opts.Negations)
		res.TopNegations = sentiment.Top(res.Negations, opts.TopK)
		res.Stats.NegatedBigrams = countNegated(bigrams, opts.Negations)
		for _, s := range res.Negations {
			res.Stats.ScoredNegations += s.N
		}
		span.Rows(len(bigrams), len(res.Negations))
		span.SetAttr("negated", res.Stats.NegatedBigrams)
	})

	stage(ctx, "graph", func(span *tracing.Span) {
		edges := 0
		for _, group := range res.Groups {
			g := graph.Build(res.BigramCounts, group, opts.Threshold)
			if g.Empty() {
				log.Info("word graph is empty", "group", group, "threshold", opts.Threshold)
			}
			edges += len(g.Edges)
			res.Graphs = append(res.Graphs, g)
		}
		span.Rows(len(res.BigramCounts), edges)
		span.SetAttr("graphs", len(res.Graphs))
	})

	return res
}

func countNegated(bigrams []tokenizer.NGram, negations []string) int {
	set := make(map[string]struct{}, len(negations))
	for _, n := range negations {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	total := 0
	for _, g := range bigrams {
		if _, ok := set[g.Word1()]; ok && len(g.Words) == 2 {
			total++
		}
	}
	return total
}
