package render

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/graph"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/stopwords"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
)

func sampleGraph() *graph.Graph {
	counts := []aggregate.Count{
		{Term: "love cats", Words: []string{"love", "cats"}, Group: "yes", N: 40},
		{Term: "love dogs", Words: []string{"love", "dogs"}, Group: "yes", N: 30},
		{Term: "board games", Words: []string{"board", "games"}, Group: "yes", N: 25},
	}
	return graph.Build(counts, "yes", 20)
}

func TestLayoutIsSeeded(t *testing.T) {
	g := sampleGraph()

	first := Layout(g, 2017, 100)
	second := Layout(g, 2017, 100)
	other := Layout(g, 7, 100)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	require.Len(t, first, len(g.Nodes))
	for i, p := range first {
		assert.Equal(t, g.Nodes[i].ID, p.ID)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 1.0)
	}
}

func TestLayoutEmptyGraph(t *testing.T) {
	positions := Layout(graph.Build(nil, "no", 20), 1, 10)

	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestWriteCountsCSV(t *testing.T) {
	var buf bytes.Buffer
	counts := []aggregate.Count{
		{Term: "love cats", Words: []string{"love", "cats"}, Group: "yes", N: 3},
	}

	require.NoError(t, WriteCountsCSV(&buf, counts))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"term", "word1", "word2", "group", "n"},
		{"love cats", "love", "cats", "yes", "3"},
	}, rows)
}

func TestWriteNegationsCSV(t *testing.T) {
	var buf bytes.Buffer
	scores := []sentiment.NegatedWordScore{
		{NegationWord: "not", Word2: "great", Score: 3, N: 5, Contribution: 15},
	}

	require.NoError(t, WriteNegationsCSV(&buf, scores))

	assert.Equal(t, "negation_word,word2,score,n,contribution\nnot,great,3,5,15\n", buf.String())
}

func TestBarChartSVG(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{
		{Label: "not great", Value: 15},
		{Label: "not <bad>", Value: -6},
	}

	require.NoError(t, BarChartSVG(&buf, "Negations", bars))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Negations")
	assert.Contains(t, out, "not great")
	assert.Contains(t, out, "not &lt;bad&gt;")
}

func TestBarChartSVGRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := BarChartSVG(&buf, "Empty", nil)

	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderWritesArtifacts(t *testing.T) {
	var records []dataset.Record
	for i := 0; i < 25; i++ {
		records = append(records,
			dataset.NewRecord("I love cats and board games", true, "no"),
			dataset.NewRecord("not great, never happy with red wine", true, "yes"),
		)
	}
	opts := pipeline.OptionsFromConfig(config.Default())
	res := pipeline.Analyze(context.Background(), records, stopwords.Default(), sentiment.DefaultLexicon(), opts, nil)

	cfg := config.Default().Render
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Iterations = 50

	written, err := New(cfg).Render(res)
	require.NoError(t, err)

	names := make([]string, len(written))
	for i, p := range written {
		names[i] = filepath.Base(p)
	}
	for _, want := range []string{
		"counts.csv", "tfidf.csv", "tfidf_top.csv", "negations.csv", "summary.json",
		"graph_no.dot", "graph_no.json", "graph_yes.dot", "graph_yes.json",
		"tfidf_no.svg", "tfidf_yes.svg", "negations.svg",
		"negations_never.svg", "negations_not.svg",
	} {
		assert.Contains(t, names, want)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "graph_no.json"))
	require.NoError(t, err)
	var lg struct {
		Group     string     `json:"group"`
		Seed      int64      `json:"seed"`
		Edges     []any      `json:"edges"`
		Positions []Position `json:"positions"`
	}
	require.NoError(t, json.Unmarshal(data, &lg))
	assert.Equal(t, "no", lg.Group)
	assert.Equal(t, int64(2017), lg.Seed)
	assert.NotEmpty(t, lg.Edges)
	assert.NotEmpty(t, lg.Positions)
}

func TestRenderSkipsChartsWhenDisabled(t *testing.T) {
	records := []dataset.Record{
		dataset.NewRecord("not happy with board games", true, "no"),
	}
	res := pipeline.Analyze(context.Background(), records, stopwords.Default(), sentiment.DefaultLexicon(),
		pipeline.OptionsFromConfig(config.Default()), nil)

	cfg := config.Default().Render
	cfg.OutputDir = t.TempDir()
	cfg.Charts = false

	written, err := New(cfg).Render(res)
	require.NoError(t, err)

	for _, p := range written {
		assert.NotEqual(t, ".svg", filepath.Ext(p))
	}
}

func TestRenderIsReproducible(t *testing.T) {
	records := []dataset.Record{
		dataset.NewRecord("hiking and climbing on weekends", true, "no"),
		dataset.NewRecord("not sure what to write here", true, "sometimes"),
	}
	res := pipeline.Analyze(context.Background(), records, stopwords.Default(), sentiment.DefaultLexicon(),
		pipeline.OptionsFromConfig(config.Default()), nil)

	read := func() []byte {
		cfg := config.Default().Render
		cfg.OutputDir = t.TempDir()
		_, err := New(cfg).Render(res)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "summary.json"))
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, read(), read())
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "yes", fileSafe("yes"))
	assert.Equal(t, "when_drinking", fileSafe("when drinking"))
	assert.Equal(t, "all", fileSafe(""))
}
