package dataset

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
)

// LabelRule maps a raw category to one of two labels. The comparison is
// exact after trimming surrounding whitespace.
type LabelRule struct {
	Match      string
	MatchLabel Group
	OtherLabel Group
}

func RuleFromConfig(cfg config.LabelConfig) LabelRule {
	return LabelRule{
		Match:      cfg.Match,
		MatchLabel: Group(cfg.MatchLabel),
		OtherLabel: Group(cfg.OtherLabel),
	}
}

// Apply returns the label for one raw value.
func (r LabelRule) Apply(raw string) Group {
	if strings.TrimSpace(raw) == r.Match {
		return r.MatchLabel
	}
	return r.OtherLabel
}

// Groups returns both labels in ascending order.
func (r LabelRule) Groups() []Group {
	if r.MatchLabel < r.OtherLabel {
		return []Group{r.MatchLabel, r.OtherLabel}
	}
	return []Group{r.OtherLabel, r.MatchLabel}
}

// DropIncomplete removes records without text. It reports how many were
// dropped; a dropped row is not an error.
func DropIncomplete(records []Record) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if !rec.HasText {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}

// Label attaches the group of every record. Records without text are
// skipped so the result always satisfies the LabeledRecord invariant.
func Label(records []Record, rule LabelRule) []LabeledRecord {
	out := make([]LabeledRecord, 0, len(records))
	for _, rec := range records {
		if !rec.HasText {
			continue
		}
		out = append(out, LabeledRecord{
			Text:  rec.Text,
			Group: rule.Apply(rec.GroupRaw),
		})
	}
	return out
}
