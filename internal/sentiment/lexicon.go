// Package sentiment scores negated word pairs against a word to integer
// sentiment lexicon. A bigram such as "not happy" contributes its count
// times the lexicon score of the second word, which exposes words whose
// polarity is flipped by a preceding negation.
package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed afinn_sample.txt
var afinnSample string

// Lexicon maps a lower-case word to its integer score.
type Lexicon map[string]int

// DefaultLexicon returns the embedded sample of AFINN-111. It covers the
// words common in profile text only; full analyses load the complete list
// with LoadLexicon.
func DefaultLexicon() Lexicon {
	lex, _ := ParseLexicon(afinnSample)
	return lex
}

// ParseLexicon parses "word<TAB>score" lines. Blank lines and lines
// starting with '#' are skipped; a malformed line is an error.
func ParseLexicon(raw string) (Lexicon, error) {
	lex := make(Lexicon, 256)
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		sep := strings.LastIndexAny(line, "\t ")
		if sep <= 0 {
			return nil, fmt.Errorf("lexicon line %d: expected word and score", i+1)
		}
		word := strings.ToLower(strings.TrimSpace(line[:sep]))
		score, err := strconv.Atoi(strings.TrimSpace(line[sep+1:]))
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", i+1, err)
		}
		lex[word] = score
	}
	return lex, nil
}

// LoadLexicon reads an external lexicon file.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	lex, err := ParseLexicon(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Score returns the score of word and whether it is in the lexicon.
func (l Lexicon) Score(word string) (int, bool) {
	score, ok := l[word]
	return score, ok
}
