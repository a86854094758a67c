// Package config loads and validates the analysis configuration from YAML
// files with environment-variable overrides. A .env file in the working
// directory is read first so its values take part in the overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Label     LabelConfig     `yaml:"label"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Stopwords StopwordsConfig `yaml:"stopwords"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Graph     GraphConfig     `yaml:"graph"`
	Render    RenderConfig    `yaml:"render"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DatasetConfig selects the input source and the two projected columns.
type DatasetConfig struct {
	Source      string `yaml:"source"`
	Path        string `yaml:"path"`
	Table       string `yaml:"table"`
	TextColumn  string `yaml:"textColumn"`
	GroupColumn string `yaml:"groupColumn"`
}

// LabelConfig is the raw-category to binary-label rule. Rows whose category
// equals Match get MatchLabel; every other row, including missing values,
// gets OtherLabel.
type LabelConfig struct {
	Match      string `yaml:"match"`
	MatchLabel string `yaml:"matchLabel"`
	OtherLabel string `yaml:"otherLabel"`
}

type TokenizerConfig struct {
	NGram     int  `yaml:"ngram"`
	StripHTML bool `yaml:"stripHTML"`
}

// StopwordsConfig points at an optional external list. The embedded list is
// used when Path is empty.
type StopwordsConfig struct {
	Path string `yaml:"path"`
}

type SentimentConfig struct {
	LexiconPath string   `yaml:"lexiconPath"`
	Negations   []string `yaml:"negations"`
	TopK        int      `yaml:"topK"`
}

type AnalysisConfig struct {
	TopN int `yaml:"topN"`
}

type GraphConfig struct {
	Threshold int `yaml:"threshold"`
}

// RenderConfig controls artifact output. Seed feeds the force-directed
// layout so coordinates are reproducible.
type RenderConfig struct {
	OutputDir  string `yaml:"outputDir"`
	Seed       int64  `yaml:"seed"`
	Iterations int    `yaml:"iterations"`
	Charts     bool   `yaml:"charts"`
}

// PostgresConfig holds PostgreSQL connection parameters for the postgres
// dataset source.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	ConnectTimeout  time.Duration `yaml:"connectTimeout"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export. An empty Textfile
// disables the export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:      SourceCSV,
			Path:        "data/profiles.csv",
			Table:       "profiles",
			TextColumn:  "essay0",
			GroupColumn: "smokes",
		},
		Label: LabelConfig{
			Match:      "no",
			MatchLabel: "no",
			OtherLabel: "yes",
		},
		Tokenizer: TokenizerConfig{
			NGram:     2,
			StripHTML: true,
		},
		Sentiment: SentimentConfig{
			Negations: []string{"not", "no", "never", "without"},
			TopK:      20,
		},
		Analysis: AnalysisConfig{
			TopN: 15,
		},
		Graph: GraphConfig{
			Threshold: 20,
		},
		Render: RenderConfig{
			OutputDir:  "out",
			Seed:       2017,
			Iterations: 300,
			Charts:     true,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "profiles",
			User:            "profiles",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
			ConnectTimeout:  5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "dataset.path is required for the csv source")
		}
	case SourcePostgres:
		if c.Dataset.Table == "" {
			return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "dataset.table is required for the postgres source")
		}
	default:
		return apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "unknown dataset.source %q", c.Dataset.Source)
	}
	if c.Dataset.TextColumn == "" || c.Dataset.GroupColumn == "" {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "dataset.textColumn and dataset.groupColumn are required")
	}
	if c.Label.MatchLabel == "" || c.Label.OtherLabel == "" || c.Label.MatchLabel == c.Label.OtherLabel {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "label.matchLabel and label.otherLabel must be distinct and non-empty")
	}
	if c.Tokenizer.NGram < 1 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "tokenizer.ngram must be at least 1, got %d", c.Tokenizer.NGram)
	}
	if c.Analysis.TopN < 0 || c.Sentiment.TopK < 0 {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "analysis.topN and sentiment.topK must not be negative")
	}
	if c.Graph.Threshold < 0 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "graph.threshold must not be negative, got %d", c.Graph.Threshold)
	}
	if c.Render.OutputDir == "" {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "render.outputDir is required")
	}
	return nil
}

// applyEnvOverrides reads PA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PA_DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = v
	}
	if v := os.Getenv("PA_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("PA_DATASET_TABLE"); v != "" {
		cfg.Dataset.Table = v
	}
	if v := os.Getenv("PA_DATASET_TEXT_COLUMN"); v != "" {
		cfg.Dataset.TextColumn = v
	}
	if v := os.Getenv("PA_DATASET_GROUP_COLUMN"); v != "" {
		cfg.Dataset.GroupColumn = v
	}
	if v := os.Getenv("PA_LABEL_MATCH"); v != "" {
		cfg.Label.Match = v
	}
	if v := os.Getenv("PA_TOKENIZER_NGRAM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Tokenizer.NGram = n
		}
	}
	if v := os.Getenv("PA_STOPWORDS_PATH"); v != "" {
		cfg.Stopwords.Path = v
	}
	if v := os.Getenv("PA_SENTIMENT_LEXICON_PATH"); v != "" {
		cfg.Sentiment.LexiconPath = v
	}
	if v := os.Getenv("PA_SENTIMENT_NEGATIONS"); v != "" {
		cfg.Sentiment.Negations = strings.Split(v, ",")
	}
	if v := os.Getenv("PA_ANALYSIS_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.TopN = n
		}
	}
	if v := os.Getenv("PA_GRAPH_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Graph.Threshold = n
		}
	}
	if v := os.Getenv("PA_RENDER_OUTPUT_DIR"); v != "" {
		cfg.Render.OutputDir = v
	}
	if v := os.Getenv("PA_RENDER_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Render.Seed = seed
		}
	}
	if v := os.Getenv("PA_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("PA_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("PA_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("PA_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("PA_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("PA_POSTGRES_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("PA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PA_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}
