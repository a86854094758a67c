package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
)

// WriteCountsCSV writes term,group,n rows.
func WriteCountsCSV(w io.Writer, counts []aggregate.Count) error {
	rows := make([][]string, 0, len(counts)+1)
	rows = append(rows, []string{"term", "word1", "word2", "group", "n"})
	for _, c := range counts {
		rows = append(rows, []string{c.Term, wordAt(c.Words, 0), wordAt(c.Words, 1), string(c.Group), strconv.Itoa(c.N)})
	}
	return writeCSV(w, rows)
}

// WriteTfIdfCSV writes term,group,n,tf,idf,tf_idf rows.
func WriteTfIdfCSV(w io.Writer, tfidf []aggregate.TfIdfRow) error {
	rows := make([][]string, 0, len(tfidf)+1)
	rows = append(rows, []string{"term", "group", "n", "tf", "idf", "tf_idf"})
	for _, r := range tfidf {
		rows = append(rows, []string{
			r.Term,
			string(r.Group),
			strconv.Itoa(r.N),
			formatFloat(r.TF),
			formatFloat(r.IDF),
			formatFloat(r.TfIdf),
		})
	}
	return writeCSV(w, rows)
}

// WriteNegationsCSV writes the negated word scores.
func WriteNegationsCSV(w io.Writer, scores []sentiment.NegatedWordScore) error {
	rows := make([][]string, 0, len(scores)+1)
	rows = append(rows, []string{"negation_word", "word2", "score", "n", "contribution"})
	for _, s := range scores {
		rows = append(rows, []string{
			s.NegationWord,
			s.Word2,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.N),
			strconv.Itoa(s.Contribution),
		})
	}
	return writeCSV(w, rows)
}

// WriteJSON encodes v with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func wordAt(words []string, i int) string {
	if i < len(words) {
		return words[i]
	}
	return ""
}
