// Package stopwords holds the static stopword set and filters n-grams that
// contain a stopword.
package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
)

//go:embed english.txt
var englishRaw string

// Set is an immutable collection of lower-cased stopwords.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from words. Entries are lower-cased and trimmed.
func New(words []string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return s
}

// Default returns the embedded English list.
func Default() *Set {
	set, _ := Parse(strings.NewReader(englishRaw))
	return set
}

// Parse reads one word per line. Blank lines and lines starting with '#'
// are ignored.
func Parse(r io.Reader) (*Set, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stopwords: %w", err)
	}
	return New(words), nil
}

// LoadFile reads an external stopword list.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stopwords %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Contains reports whether word is a stopword, ignoring case.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

func (s *Set) Len() int {
	return len(s.words)
}

// Filter returns the grams none of whose words is a stopword. The input is
// not modified and surviving grams keep their order.
func (s *Set) Filter(grams []tokenizer.NGram) []tokenizer.NGram {
	out := make([]tokenizer.NGram, 0, len(grams))
	for _, g := range grams {
		if s.containsAny(g.Words) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func (s *Set) containsAny(words []string) bool {
	for _, w := range words {
		if s.Contains(w) {
			return true
		}
	}
	return false
}
