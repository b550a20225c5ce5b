package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KindProducts is the document kind of the product catalog. Policy
// documents use their model.PolicyKind value.
const KindProducts = "products"

const schema = `
CREATE TABLE IF NOT EXISTS scraped_documents (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL UNIQUE,
	source      TEXT NOT NULL,
	payload     JSONB NOT NULL,
	scraped_at  TIMESTAMPTZ NOT NULL
)`

// DocumentRepository stores the latest scraped copy of each document.
type DocumentRepository struct {
	DB *sql.DB
}

func (r *DocumentRepository) EnsureSchema() error {
	_, err := r.DB.Exec(schema)
	return err
}

// Save replaces the stored document of the given kind.
func (r *DocumentRepository) Save(kind, source string, scrapedAt time.Time, document any) error {
	payload, err := encodePayload(document)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}

	var exists bool
	err = r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM scraped_documents WHERE kind = $1)", kind).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(`
			UPDATE scraped_documents
			SET source = $1, payload = $2, scraped_at = $3
			WHERE kind = $4
		`, source, payload, scrapedAt, kind)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO scraped_documents
			(id, kind, source, payload, scraped_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), kind, source, payload, scrapedAt)
	}

	return err
}

// Kinds lists the stored document kinds.
func (r *DocumentRepository) Kinds() ([]string, error) {
	rows, err := r.DB.Query(`SELECT kind FROM scraped_documents ORDER BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// Remove inválidos para evitar "invalid byte sequence for encoding UTF8".
func encodePayload(document any) (string, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(raw), ""), nil
}
