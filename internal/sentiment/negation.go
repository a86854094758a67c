package sentiment

import (
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
)

// DefaultNegations are the negation terms used when none are configured.
var DefaultNegations = []string{"not", "no", "never", "without"}

// NegatedWordScore aggregates one (negation, word) pair found in the
// lexicon. Contribution is N times Score.
type NegatedWordScore struct {
	NegationWord string `json:"negation_word"`
	Word2        string `json:"word2"`
	Score        int    `json:"score"`
	N            int    `json:"n"`
	Contribution int    `json:"contribution"`
}

type negKey struct {
	negation string
	word     string
}

// ScoreNegations keeps bigrams whose first word is a negation term, joins
// the second word against lex and aggregates repeated pairs. Pairs whose
// second word is not in the lexicon are dropped. Rows are ranked by
// |contribution| descending, then N descending, then negation word and
// word2 ascending.
func ScoreNegations(grams []tokenizer.NGram, lex Lexicon, negations []string) []NegatedWordScore {
	negSet := make(map[string]struct{}, len(negations))
	for _, n := range negations {
		negSet[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	index := make(map[negKey]int)
	var out []NegatedWordScore
	for _, g := range grams {
		if len(g.Words) != 2 {
			continue
		}
		if _, ok := negSet[g.Word1()]; !ok {
			continue
		}
		score, ok := lex.Score(g.Word2())
		if !ok {
			continue
		}
		key := negKey{negation: g.Word1(), word: g.Word2()}
		if i, seen := index[key]; seen {
			out[i].N++
			out[i].Contribution += score
			continue
		}
		index[key] = len(out)
		out = append(out, NegatedWordScore{
			NegationWord: key.negation,
			Word2:        key.word,
			Score:        score,
			N:            1,
			Contribution: score,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		ai, aj := abs(out[i].Contribution), abs(out[j].Contribution)
		if ai != aj {
			return ai > aj
		}
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		if out[i].NegationWord != out[j].NegationWord {
			return out[i].NegationWord < out[j].NegationWord
		}
		return out[i].Word2 < out[j].Word2
	})
	return out
}

// Top returns the first k rows.
func Top(scores []NegatedWordScore, k int) []NegatedWordScore {
	if k < 0 {
		k = 0
	}
	if len(scores) > k {
		return scores[:k:k]
	}
	return scores
}

// ByNegation splits rows per negation word, keeping their ranked order.
func ByNegation(scores []NegatedWordScore) map[string][]NegatedWordScore {
	out := make(map[string][]NegatedWordScore)
	for _, s := range scores {
		out[s.NegationWord] = append(out[s.NegationWord], s)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
