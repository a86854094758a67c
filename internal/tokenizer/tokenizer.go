// Package tokenizer turns profile text into word n-grams. It lower-cases
// input, splits on non-word boundaries, and slides a fixed-size window over
// the words of each record.
package tokenizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
)

var (
	tagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

// NGram is a window of adjacent words from one record.
type NGram struct {
	Words []string      `json:"words"`
	Group dataset.Group `json:"group"`
}

// Term joins the words with single spaces.
func (g NGram) Term() string {
	return strings.Join(g.Words, " ")
}

// Word1 returns the first word of the window.
func (g NGram) Word1() string {
	if len(g.Words) == 0 {
		return ""
	}
	return g.Words[0]
}

// Word2 returns the second word of the window, or "" for unigrams.
func (g NGram) Word2() string {
	if len(g.Words) < 2 {
		return ""
	}
	return g.Words[1]
}

// Options controls tokenization.
type Options struct {
	N         int
	StripHTML bool
}

// Clean removes markup from profile text: HTML tags become spaces, entities
// are unescaped and links are dropped.
func Clean(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = urlPattern.ReplaceAllString(text, " ")
	return text
}

// Words lower-cases text and splits it into word tokens. Letters, digits,
// underscores and apostrophes are word characters; apostrophes are trimmed
// from the ends of each token.
func Words(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "\u2019", "'"))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '\''
	})
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, "'")
		if field == "" {
			continue
		}
		words = append(words, field)
	}
	return words
}

// NGrams returns every contiguous window of n words. Fewer than n words
// yield no windows.
func NGrams(words []string, n int) [][]string {
	if n < 1 || len(words) < n {
		return nil
	}
	out := make([][]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, words[i:i+n:i+n])
	}
	return out
}

// Tokenize emits the n-grams of every record tagged with its group. Windows
// never span two records.
func Tokenize(records []dataset.LabeledRecord, opts Options) []NGram {
	n := opts.N
	if n < 1 {
		n = 2
	}
	var grams []NGram
	for _, rec := range records {
		text := rec.Text
		if opts.StripHTML {
			text = Clean(text)
		}
		for _, window := range NGrams(Words(text), n) {
			grams = append(grams, NGram{Words: window, Group: rec.Group})
		}
	}
	return grams
}

// Bigrams is Tokenize with a window of two.
func Bigrams(records []dataset.LabeledRecord, stripHTML bool) []NGram {
	return Tokenize(records, Options{N: 2, StripHTML: stripHTML})
}
