package adapter

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	_ "modernc.org/sqlite"
)

// sqliteSchema creates the item and observation tables on first open.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tracked_items (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	config TEXT NOT NULL DEFAULT '{}',
	display_name TEXT NOT NULL DEFAULT '',
	notification_threshold REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS price_observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id TEXT NOT NULL,
	observed_at TIMESTAMP NOT NULL,
	price REAL NOT NULL,
	metadata TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_observations_item ON price_observations (item_id, id);
`

// SqliteStore implements the PriceStore port on a local SQLite database.
// It suits single-host deployments and the command line runner, where a
// Redis instance is not worth operating.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (and if needed creates) the database at path.
func NewSqliteStore(path string) (*SqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite supports a single writer. Serializing connections avoids
	// SQLITE_BUSY errors during concurrent tracking runs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// GetLatest returns the newest observation for the item.
func (s *SqliteStore) GetLatest(ctx context.Context, itemID string) (*domain.PriceObservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT observed_at, price, metadata FROM price_observations WHERE item_id = ? ORDER BY id DESC LIMIT 1`,
		itemID,
	)

	var (
		observedAt time.Time
		price      float64
		metadata   string
	)
	if err := row.Scan(&observedAt, &price, &metadata); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNoObservations
		}
		return nil, fmt.Errorf("failed to read latest observation for %s: %w", itemID, err)
	}

	obs := domain.PriceObservation{
		ItemID:    itemID,
		Timestamp: observedAt,
		Price:     price,
	}
	if err := json.Unmarshal([]byte(metadata), &obs.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode observation metadata for %s: %w", itemID, err)
	}

	return &obs, nil
}

// Append records a new observation.
func (s *SqliteStore) Append(ctx context.Context, obs domain.PriceObservation) error {
	metadata, err := json.Marshal(obs.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode observation metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO price_observations (item_id, observed_at, price, metadata) VALUES (?, ?, ?, ?)`,
		obs.ItemID, obs.Timestamp, obs.Price, string(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to append observation for %s: %w", obs.ItemID, err)
	}

	return nil
}

// History returns up to limit observations for the item, newest first.
func (s *SqliteStore) History(ctx context.Context, itemID string, limit int) ([]domain.PriceObservation, error) {
	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT observed_at, price, metadata FROM price_observations WHERE item_id = ? ORDER BY id DESC LIMIT ?`,
		itemID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", itemID, err)
	}
	defer rows.Close()

	var observations []domain.PriceObservation
	for rows.Next() {
		var (
			observedAt time.Time
			price      float64
			metadata   string
		)
		if err := rows.Scan(&observedAt, &price, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan observation for %s: %w", itemID, err)
		}

		obs := domain.PriceObservation{
			ItemID:    itemID,
			Timestamp: observedAt,
			Price:     price,
		}
		if err := json.Unmarshal([]byte(metadata), &obs.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode observation metadata for %s: %w", itemID, err)
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", itemID, err)
	}

	return observations, nil
}

// SaveItem creates or replaces a tracked item definition.
func (s *SqliteStore) SaveItem(ctx context.Context, item *domain.TrackedItem) error {
	config, err := json.Marshal(item.Config)
	if err != nil {
		return fmt.Errorf("failed to encode item config: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tracked_items
			(id, source, config, display_name, notification_threshold, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Source), string(config), item.DisplayName,
		item.NotificationThreshold, string(item.Status), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}

	return nil
}

// GetItem returns the item with the given id.
func (s *SqliteStore) GetItem(ctx context.Context, id string) (*domain.TrackedItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, config, display_name, notification_threshold, status, created_at, updated_at
		FROM tracked_items WHERE id = ?`,
		id,
	)

	item, err := scanTrackedItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}

	return item, nil
}

// ListItems returns items filtered by source and status, oldest first.
// Empty filters match all items.
func (s *SqliteStore) ListItems(ctx context.Context, source domain.SourceType, status domain.ItemStatus) ([]domain.TrackedItem, error) {
	query := `SELECT id, source, config, display_name, notification_threshold, status, created_at, updated_at
		FROM tracked_items`

	var (
		conds []string
		args  []interface{}
	)
	if source != "" {
		conds = append(conds, "source = ?")
		args = append(args, string(source))
	}
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(status))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.TrackedItem
	for rows.Next() {
		item, err := scanTrackedItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// ListActive returns active items, optionally filtered by source.
func (s *SqliteStore) ListActive(ctx context.Context, source domain.SourceType) ([]domain.TrackedItem, error) {
	return s.ListItems(ctx, source, domain.ItemStatusActive)
}

// SetItemStatus flips an item between active and inactive.
func (s *SqliteStore) SetItemStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tracked_items SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status for %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update status for %s: %w", id, err)
	}
	if affected == 0 {
		return ports.ErrItemNotFound
	}

	return nil
}

// Ping checks if the database file is usable.
func (s *SqliteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// scanTrackedItem reads one tracked_items row via the given scan function.
func scanTrackedItem(scan func(dest ...interface{}) error) (*domain.TrackedItem, error) {
	var (
		item   domain.TrackedItem
		source string
		config string
		status string
	)
	if err := scan(&item.ID, &source, &config, &item.DisplayName,
		&item.NotificationThreshold, &status, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	item.Source = domain.SourceType(source)
	item.Status = domain.ItemStatus(status)
	if err := json.Unmarshal([]byte(config), &item.Config); err != nil {
		return nil, fmt.Errorf("failed to decode item config: %w", err)
	}

	return &item, nil
}
