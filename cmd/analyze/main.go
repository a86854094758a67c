// Command analyze runs the profile essay analysis once.
//
// It loads the configured dataset, splits essays into bigrams, compares the
// two label groups by tf-idf, scores negated phrases against the sentiment
// lexicon, builds per-group word graphs and writes every table, graph and
// chart into the output directory.
//
// Usage:
//
//	go run ./cmd/analyze [-config configs/analyze.yaml] [-input profiles.csv] [-threshold 20] [-top 15] [-ngram 2] [-out out] [-seed 2017]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/render"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	input := flag.String("input", "", "dataset CSV path (overrides dataset.path)")
	threshold := flag.Int("threshold", 0, "minimum bigram count for graph edges (overrides graph.threshold)")
	topN := flag.Int("top", 0, "rows per group in the tf-idf top table (overrides analysis.topN)")
	ngram := flag.Int("ngram", 0, "n-gram size for count and tf-idf tables (overrides tokenizer.ngram)")
	outDir := flag.String("out", "", "output directory (overrides render.outputDir)")
	seed := flag.Int64("seed", 0, "graph layout seed (overrides render.seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(apperrors.ExitInvalid)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Dataset.Source = config.SourceCSV
			cfg.Dataset.Path = *input
		case "threshold":
			cfg.Graph.Threshold = *threshold
		case "top":
			cfg.Analysis.TopN = *topN
		case "ngram":
			cfg.Tokenizer.NGram = *ngram
		case "out":
			cfg.Render.OutputDir = *outDir
		case "seed":
			cfg.Render.Seed = *seed
		}
	})

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err := run(cfg); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := dataset.NewSource(ctx, cfg.Dataset, cfg.Postgres)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			slog.Warn("closing dataset source", "error", err)
		}
	}()

	stops, lex, err := pipeline.LoadResources(cfg)
	if err != nil {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitInvalid, "%v", err)
	}
	slog.Info("resources loaded", "stopwords", stops.Len(), "lexicon", len(lex), "source", cfg.Dataset.Source)

	m := metrics.New()
	p := pipeline.New(source, stops, lex, pipeline.OptionsFromConfig(cfg), m)
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	written, err := render.New(cfg.Render).Render(result)
	if err != nil {
		return fmt.Errorf("rendering artifacts: %w", err)
	}
	slog.Info("artifacts written", "dir", cfg.Render.OutputDir, "files", len(written))

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
		slog.Info("metrics written", "path", cfg.Metrics.Textfile)
	}
	return nil
}
