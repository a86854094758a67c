package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/logger"
)

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	Path        string
	TextColumn  string
	GroupColumn string
	logger      *slog.Logger
}

func NewCSVSource(path, textColumn, groupColumn string) *CSVSource {
	return &CSVSource{
		Path:        path,
		TextColumn:  textColumn,
		GroupColumn: groupColumn,
		logger:      logger.WithComponent(slog.Default(), "csv-source"),
	}
}

func (s *CSVSource) Load(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceUnavailable, "opening %s: %v", s.Path, err)
	}
	defer f.Close()

	records, err := ReadCSV(ctx, f, s.TextColumn, s.GroupColumn)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	s.logger.Info("dataset loaded", "path", s.Path, "records", len(records))
	return records, nil
}

// ReadCSV projects textColumn and groupColumn out of CSV data. Rows shorter
// than the header yield null cells for the missing fields.
func ReadCSV(ctx context.Context, r io.Reader, textColumn, groupColumn string) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitInvalid, "csv input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	textIdx, groupIdx, err := locateColumns("csv header", header, textColumn, groupColumn)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitInvalid, "parsing csv row %d: %v", len(records)+2, err)
		}
		text, hasText := cell(row, textIdx)
		group, _ := cell(row, groupIdx)
		records = append(records, NewRecord(text, hasText, group))
	}
	return records, nil
}

func cell(row []string, idx int) (string, bool) {
	if idx >= len(row) {
		return "", false
	}
	return row[idx], true
}
