// Package dataset loads profile records from a CSV file or a PostgreSQL
// table, projects the free-text and category columns, and derives the
// binary group label used by every later stage.
package dataset

import (
	"context"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/errors"
)

// Record is one projected input row.
type Record struct {
	Text     string
	HasText  bool
	GroupRaw string
}

// Group is the binary label derived from the raw category.
type Group string

// LabeledRecord is a record that survived the incomplete-row filter and
// carries its derived group.
type LabeledRecord struct {
	Text  string `json:"text"`
	Group Group  `json:"group"`
}

// Source produces the projected records of one dataset.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// nullMarkers are cell values treated as missing.
var nullMarkers = map[string]struct{}{
	"":    {},
	"NA":  {},
	"N/A": {},
}

// NewRecord builds a Record from raw cell values, applying the null rules to
// the text cell.
func NewRecord(text string, textPresent bool, groupRaw string) Record {
	if textPresent {
		if _, isNull := nullMarkers[strings.TrimSpace(text)]; isNull {
			textPresent = false
		}
	}
	if !textPresent {
		text = ""
	}
	return Record{Text: text, HasText: textPresent, GroupRaw: groupRaw}
}

// locateColumns finds the projected columns in a header. A missing column
// is fatal.
func locateColumns(source string, header []string, textColumn, groupColumn string) (int, int, error) {
	textIdx, groupIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == textColumn && textIdx < 0 {
			textIdx = i
		}
		if name == groupColumn && groupIdx < 0 {
			groupIdx = i
		}
	}
	if textIdx < 0 {
		return 0, 0, apperrors.MissingField(source, textColumn)
	}
	if groupIdx < 0 {
		return 0, 0, apperrors.MissingField(source, groupColumn)
	}
	return textIdx, groupIdx, nil
}
