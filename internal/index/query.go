package index

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"curator/internal/entity"
)

// Record is one indexed asset.
type Record struct {
	Container  string
	Kind       entity.Kind
	Name       string
	CatalogID  uuid.UUID
	Tags       []string
	ModifiedAt time.Time
}

const recordColumns = "container, kind, name, catalog_id, tags, modified_at"

// All returns every indexed asset ordered by container, then name.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	return s.query(ctx,
		"SELECT "+recordColumns+" FROM assets ORDER BY container, kind, name")
}

// Search returns assets whose name or tags contain the query, case
// insensitively.
func (s *Store) Search(ctx context.Context, query string) ([]Record, error) {
	pattern := "%" + query + "%"
	return s.query(ctx,
		"SELECT "+recordColumns+" FROM assets WHERE name LIKE ? OR tags LIKE ? ORDER BY container, kind, name",
		pattern, pattern)
}

// ByCatalog returns the assets assigned to the given catalog.
func (s *Store) ByCatalog(ctx context.Context, id uuid.UUID) ([]Record, error) {
	return s.query(ctx,
		"SELECT "+recordColumns+" FROM assets WHERE catalog_id = ? ORDER BY container, kind, name",
		id.String())
}

func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		record    Record
		kind      string
		catalogID string
		tags      string
		modified  string
	)
	if err := rows.Scan(&record.Container, &kind, &record.Name, &catalogID, &tags, &modified); err != nil {
		return Record{}, fmt.Errorf("scan asset row: %w", err)
	}
	record.Kind = entity.Kind(kind)
	if parsed, err := uuid.Parse(catalogID); err == nil {
		record.CatalogID = parsed
	}
	record.Tags = splitTags(tags)
	if ts, err := time.Parse(time.RFC3339Nano, modified); err == nil {
		record.ModifiedAt = ts
	}
	return record, nil
}
