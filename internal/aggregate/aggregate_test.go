package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
)

func repeat(n int, group dataset.Group, words ...string) []tokenizer.NGram {
	out := make([]tokenizer.NGram, n)
	for i := range out {
		out[i] = tokenizer.NGram{Words: words, Group: group}
	}
	return out
}

func concat(parts ...[]tokenizer.NGram) []tokenizer.NGram {
	var out []tokenizer.NGram
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func find(rows []TfIdfRow, term string, group dataset.Group) (TfIdfRow, bool) {
	for _, r := range rows {
		if r.Term == term && r.Group == group {
			return r, true
		}
	}
	return TfIdfRow{}, false
}

func TestCountByGroup(t *testing.T) {
	grams := concat(
		repeat(3, "yes", "love", "cats"),
		repeat(2, "no", "love", "cats"),
		repeat(3, "no", "board", "games"),
		repeat(1, "yes", "red", "wine"),
	)

	counts := CountByGroup(grams)

	assert.Equal(t, []Count{
		{Term: "board games", Words: []string{"board", "games"}, Group: "no", N: 3},
		{Term: "love cats", Words: []string{"love", "cats"}, Group: "yes", N: 3},
		{Term: "love cats", Words: []string{"love", "cats"}, Group: "no", N: 2},
		{Term: "red wine", Words: []string{"red", "wine"}, Group: "yes", N: 1},
	}, counts)
}

func TestCountTotalsMatchInput(t *testing.T) {
	grams := concat(
		repeat(7, "yes", "a", "b"),
		repeat(4, "yes", "b", "c"),
		repeat(5, "no", "a", "b"),
	)
	counts := CountByGroup(grams)

	assert.Equal(t, 11, Total(counts, "yes"))
	assert.Equal(t, 5, Total(counts, "no"))
	assert.Equal(t, 0, Total(counts, "maybe"))
}

func TestCountAllIgnoresGroups(t *testing.T) {
	grams := concat(repeat(2, "yes", "a", "b"), repeat(3, "no", "a", "b"))

	counts := CountAll(grams)

	require.Len(t, counts, 1)
	assert.Equal(t, 5, counts[0].N)
	assert.Equal(t, dataset.Group(""), counts[0].Group)
}

func TestCountTieBreakIsLexicographic(t *testing.T) {
	grams := concat(
		repeat(1, "no", "zebra", "crossing"),
		repeat(1, "no", "apple", "pie"),
		repeat(1, "no", "mango", "tree"),
	)

	counts := CountByGroup(grams)

	assert.Equal(t, "apple pie", counts[0].Term)
	assert.Equal(t, "mango tree", counts[1].Term)
	assert.Equal(t, "zebra crossing", counts[2].Term)
}

var labelGroups = []dataset.Group{"no", "yes"}

func TestTfIdfSharedTermScoresZero(t *testing.T) {
	counts := CountByGroup(concat(
		repeat(50, "yes", "love", "cats"),
		repeat(1, "no", "love", "cats"),
		repeat(3, "no", "board", "games"),
	))

	rows := TfIdf(counts, labelGroups)

	for _, group := range []dataset.Group{"yes", "no"} {
		row, ok := find(rows, "love cats", group)
		require.True(t, ok)
		assert.Zero(t, row.IDF)
		assert.Zero(t, row.TfIdf)
	}
}

func TestTfIdfExclusiveTerm(t *testing.T) {
	counts := CountByGroup(concat(
		repeat(3, "yes", "love", "cats"),
		repeat(1, "no", "love", "cats"),
		repeat(3, "no", "board", "games"),
	))

	rows := TfIdf(counts, labelGroups)

	row, ok := find(rows, "board games", "no")
	require.True(t, ok)
	assert.InDelta(t, math.Ln2, row.IDF, 1e-12)
	assert.InDelta(t, 0.75, row.TF, 1e-12)
	assert.InDelta(t, 0.75*math.Ln2, row.TfIdf, 1e-12)
	assert.Greater(t, row.TfIdf, 0.0)
	assert.Equal(t, "board games", rows[0].Term)
}

func TestTfIdfCountsGroupsWithoutTerms(t *testing.T) {
	counts := CountByGroup(repeat(4, "yes", "love", "cats"))

	rows := TfIdf(counts, labelGroups)

	require.Len(t, rows, 1)
	assert.InDelta(t, math.Ln2, rows[0].IDF, 1e-12)
	assert.InDelta(t, math.Ln2, rows[0].TfIdf, 1e-12)

	alone := TfIdf(counts, nil)
	assert.Zero(t, alone[0].IDF)
}

func TestTfIdfEmpty(t *testing.T) {
	assert.Empty(t, TfIdf(nil, labelGroups))
	assert.Empty(t, TopPerGroup(nil, 10))
}

func TestTopPerGroup(t *testing.T) {
	counts := CountByGroup(concat(
		repeat(4, "yes", "a", "b"),
		repeat(3, "yes", "c", "d"),
		repeat(2, "yes", "e", "f"),
		repeat(5, "no", "g", "h"),
		repeat(1, "no", "i", "j"),
	))
	rows := TfIdf(counts, labelGroups)

	top := TopPerGroup(rows, 2)

	require.Len(t, top, 4)
	assert.Equal(t, dataset.Group("no"), top[0].Group)
	assert.Equal(t, "g h", top[0].Term)
	assert.Equal(t, "i j", top[1].Term)
	assert.Equal(t, dataset.Group("yes"), top[2].Group)
	assert.Equal(t, "a b", top[2].Term)
	assert.Equal(t, "c d", top[3].Term)

	assert.Empty(t, TopPerGroup(rows, 0))
}

func TestFilterAboveThreshold(t *testing.T) {
	counts := []Count{
		{Term: "love cats", Group: "yes", N: 25},
		{Term: "hate dogs", Group: "yes", N: 15},
		{Term: "red wine", Group: "no", N: 40},
		{Term: "at twenty", Group: "yes", N: 20},
	}

	got := Filter(counts, "yes", 20)

	require.Len(t, got, 1)
	assert.Equal(t, "love cats", got[0].Term)
}
