package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"lojachat/internal/model"
)

// SnapshotReader builds the chat snapshot from scraped_documents.
type SnapshotReader struct {
	DB     *pgxpool.Pool
	Logger zerolog.Logger
}

// Load reads every stored document. Rows that fail to decode are skipped;
// an empty table yields model.ErrSnapshotUnavailable.
func (r *SnapshotReader) Load(ctx context.Context) (*model.Snapshot, error) {
	rows, err := r.DB.Query(ctx, `SELECT kind, payload FROM scraped_documents`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := &model.Snapshot{Policies: make(map[model.PolicyKind]*model.PolicyDocument)}
	found := 0
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, err
		}
		found++
		if err := decodeDocument(snapshot, kind, payload); err != nil {
			r.Logger.Warn().Err(err).Str("kind", kind).Msg("documento ignorado")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, model.ErrSnapshotUnavailable
	}
	return snapshot, nil
}

func decodeDocument(snapshot *model.Snapshot, kind string, payload []byte) error {
	if kind == KindProducts {
		var catalog model.ProductCatalog
		if err := json.Unmarshal(payload, &catalog); err != nil {
			return err
		}
		snapshot.Catalog = &catalog
		return nil
	}

	for _, k := range model.PolicyKinds {
		if string(k) != kind {
			continue
		}
		var doc model.PolicyDocument
		if err := json.Unmarshal(payload, &doc); err != nil {
			return err
		}
		snapshot.Policies[k] = &doc
		return nil
	}
	return fmt.Errorf("unknown document kind %q", kind)
}
