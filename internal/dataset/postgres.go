package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/postgres"
)

// PostgresSource reads records from a table. The table is only read; the
// whole scan runs inside one read-only transaction.
type PostgresSource struct {
	client      *postgres.Client
	Table       string
	TextColumn  string
	GroupColumn string
	logger      *slog.Logger
}

func NewPostgresSource(client *postgres.Client, table, textColumn, groupColumn string) *PostgresSource {
	return &PostgresSource{
		client:      client,
		Table:       table,
		TextColumn:  textColumn,
		GroupColumn: groupColumn,
		logger:      logger.WithComponent(slog.Default(), "postgres-source"),
	}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	var records []Record
	err := s.client.ReadOnly(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT * FROM "+QuoteTable(s.Table))
		if err != nil {
			return fmt.Errorf("querying %s: %w", s.Table, err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("reading columns of %s: %w", s.Table, err)
		}
		textIdx, groupIdx, err := locateColumns("table "+s.Table, columns, s.TextColumn, s.GroupColumn)
		if err != nil {
			return err
		}

		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		for rows.Next() {
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("scanning row of %s: %w", s.Table, err)
			}
			text := values[textIdx]
			group := values[groupIdx]
			records = append(records, NewRecord(text.String, text.Valid, group.String))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("dataset loaded", "table", s.Table, "records", len(records))
	return records, nil
}

// QuoteTable quotes a possibly schema-qualified table name.
func QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}
