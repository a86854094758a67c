// Package aggregate counts n-grams and scores them by tf-idf, treating each
// group as one document.
package aggregate

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
)

// Count is the number of occurrences of one term within one group. An
// ungrouped count has an empty Group.
type Count struct {
	Term  string        `json:"term"`
	Words []string      `json:"words"`
	Group dataset.Group `json:"group"`
	N     int           `json:"n"`
}

type countKey struct {
	term  string
	group dataset.Group
}

// CountByGroup counts grams per (term, group).
func CountByGroup(grams []tokenizer.NGram) []Count {
	return count(grams, true)
}

// CountAll counts grams per term across all groups.
func CountAll(grams []tokenizer.NGram) []Count {
	return count(grams, false)
}

func count(grams []tokenizer.NGram, byGroup bool) []Count {
	index := make(map[countKey]int)
	var out []Count
	for _, g := range grams {
		key := countKey{term: g.Term()}
		if byGroup {
			key.group = g.Group
		}
		if i, ok := index[key]; ok {
			out[i].N++
			continue
		}
		index[key] = len(out)
		out = append(out, Count{
			Term:  key.term,
			Words: g.Words,
			Group: key.group,
			N:     1,
		})
	}
	SortCounts(out)
	return out
}

// SortCounts orders rows by N descending, then term, then group.
func SortCounts(counts []Count) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		if counts[i].Term != counts[j].Term {
			return counts[i].Term < counts[j].Term
		}
		return counts[i].Group < counts[j].Group
	})
}

// Total returns the sum of N over the rows of group.
func Total(counts []Count, group dataset.Group) int {
	total := 0
	for _, c := range counts {
		if c.Group == group {
			total += c.N
		}
	}
	return total
}

// Filter returns the rows of group with N strictly above threshold, keeping
// their order.
func Filter(counts []Count, group dataset.Group, threshold int) []Count {
	var out []Count
	for _, c := range counts {
		if c.Group == group && c.N > threshold {
			out = append(out, c)
		}
	}
	return out
}
