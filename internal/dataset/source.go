package dataset

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/postgres"
)

// NewSource builds the Source selected by cfg.Source. The returned close
// function releases any connection the source holds.
func NewSource(ctx context.Context, cfg config.DatasetConfig, pgCfg config.PostgresConfig) (Source, func() error, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return NewCSVSource(cfg.Path, cfg.TextColumn, cfg.GroupColumn), func() error { return nil }, nil
	case config.SourcePostgres:
		client, err := postgres.New(ctx, pgCfg)
		if err != nil {
			return nil, nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitSourceUnavailable, "%v", err)
		}
		return NewPostgresSource(client, cfg.Table, cfg.TextColumn, cfg.GroupColumn), client.Close, nil
	default:
		return nil, nil, apperrors.Newf(apperrors.ErrInvalidConfig, apperrors.ExitInvalid, "unknown dataset source %q", cfg.Source)
	}
}
