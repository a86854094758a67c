package aggregate

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
)

// TfIdfRow scores one term within one group.
type TfIdfRow struct {
	Term  string        `json:"term"`
	Words []string      `json:"words"`
	Group dataset.Group `json:"group"`
	N     int           `json:"n"`
	TF    float64       `json:"tf"`
	IDF   float64       `json:"idf"`
	TfIdf float64       `json:"tf_idf"`
}

// TfIdf scores grouped counts. TF is N over the group total; IDF is
// ln(groups / groups containing the term), so a term found in every group
// scores zero and is still returned. groups names every label group, so a
// group without any terms still counts as a document; groups seen only in
// counts are added to it.
func TfIdf(counts []Count, groups []dataset.Group) []TfIdfRow {
	totals := make(map[dataset.Group]int)
	docFreq := make(map[string]int)
	for _, c := range counts {
		totals[c.Group] += c.N
		docFreq[c.Term]++
	}
	docs := make(map[dataset.Group]struct{}, len(groups)+len(totals))
	for _, g := range groups {
		docs[g] = struct{}{}
	}
	for g := range totals {
		docs[g] = struct{}{}
	}
	numGroups := float64(len(docs))

	rows := make([]TfIdfRow, 0, len(counts))
	for _, c := range counts {
		tf := float64(c.N) / float64(totals[c.Group])
		idf := math.Log(numGroups / float64(docFreq[c.Term]))
		rows = append(rows, TfIdfRow{
			Term:  c.Term,
			Words: c.Words,
			Group: c.Group,
			N:     c.N,
			TF:    tf,
			IDF:   idf,
			TfIdf: tf * idf,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TfIdf != rows[j].TfIdf {
			return rows[i].TfIdf > rows[j].TfIdf
		}
		if rows[i].Group != rows[j].Group {
			return rows[i].Group < rows[j].Group
		}
		return rows[i].Term < rows[j].Term
	})
	return rows
}

// TopPerGroup keeps the first n rows of every group, groups in ascending
// order and rows in table order within each group.
func TopPerGroup(rows []TfIdfRow, n int) []TfIdfRow {
	byGroup := make(map[dataset.Group][]TfIdfRow)
	var groups []dataset.Group
	for _, r := range rows {
		kept, seen := byGroup[r.Group]
		if !seen {
			groups = append(groups, r.Group)
		}
		if len(kept) < n {
			kept = append(kept, r)
		}
		byGroup[r.Group] = kept
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	var out []TfIdfRow
	for _, g := range groups {
		out = append(out, byGroup[g]...)
	}
	return out
}

// RowsFor returns the rows of one group, keeping their order.
func RowsFor(rows []TfIdfRow, group dataset.Group) []TfIdfRow {
	var out []TfIdfRow
	for _, r := range rows {
		if r.Group == group {
			out = append(out, r)
		}
	}
	return out
}
