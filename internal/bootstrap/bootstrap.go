// Package bootstrap wires configuration into the pieces shared by the
// server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"lojachat/internal/chat"
	"lojachat/internal/config"
	"lojachat/internal/data"
	"lojachat/internal/db"
	"lojachat/internal/model"
	"lojachat/internal/observability"
	"lojachat/internal/repository"
)

// Logger builds the process logger from cfg.
func Logger(cfg *config.Config, service string, out io.Writer) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      out,
		ServiceName: service,
	})
}

// Snapshot loads the data set named by DATA_SOURCE. File snapshots never
// fail; a missing directory just yields empty data.
func Snapshot(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*model.Snapshot, error) {
	if cfg.DataSource != config.DataSourcePostgres {
		return data.LoadDir(cfg.DataDir, logger), nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no Postgres (pgxpool): %w", err)
	}
	defer pool.Close()

	reader := &repository.SnapshotReader{DB: pool, Logger: logger}
	return reader.Load(ctx)
}

// LLM builds the model client from cfg.
func LLM(cfg *config.Config, logger zerolog.Logger) *chat.LLM {
	return chat.NewLLM(chat.LLMConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
	}, logger)
}
