package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS coin_snapshots (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		current_price TEXT NOT NULL,
		total_volume TEXT,
		price_change_24h TEXT,
		price_change_percentage_24h TEXT,
		market_cap TEXT,
		market_cap_rank INTEGER,
		last_updated INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS price_points (
		coin_id TEXT NOT NULL,
		date TEXT NOT NULL,
		price TEXT NOT NULL,
		PRIMARY KEY (coin_id, date)
	);`,
	`CREATE TABLE IF NOT EXISTS global_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		total_market_cap TEXT NOT NULL,
		total_volume TEXT NOT NULL,
		active_cryptocurrencies INTEGER NOT NULL,
		market_cap_percentage_btc TEXT,
		market_cap_percentage_eth TEXT,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		session_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		last_activity INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES chat_sessions (session_id) ON DELETE CASCADE,
		message_type TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_coin_snapshots_rank ON coin_snapshots (market_cap_rank);`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages (session_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_chat_sessions_activity ON chat_sessions (last_activity);`,
}

// SQLiteRepository stores snapshots in a local SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path. Use ":memory:" for a throwaway database.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// Migrate creates the schema if it does not exist
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) UpsertSnapshot(ctx context.Context, s models.CoinSnapshot) error {
	args := append(snapshotArgs(s), s.LastUpdated.UTC().UnixMilli())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coin_snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			symbol = excluded.symbol,
			name = excluded.name,
			image_url = excluded.image_url,
			current_price = excluded.current_price,
			total_volume = excluded.total_volume,
			price_change_24h = excluded.price_change_24h,
			price_change_percentage_24h = excluded.price_change_percentage_24h,
			market_cap = excluded.market_cap,
			market_cap_rank = excluded.market_cap_rank,
			last_updated = excluded.last_updated`, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", s.ID, err)
	}
	return nil
}

func scanSQLiteSnapshot(row rowScanner) (models.CoinSnapshot, error) {
	var raw snapshotRow
	var lastUpdated int64
	if err := row.Scan(raw.dest(&lastUpdated)...); err != nil {
		return models.CoinSnapshot{}, err
	}
	return raw.toSnapshot(time.UnixMilli(lastUpdated))
}

func (r *SQLiteRepository) GetSnapshot(ctx context.Context, coinID string) (*models.CoinSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM coin_snapshots WHERE id = ?`, coinID)
	snapshot, err := scanSQLiteSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", coinID, err)
	}
	return &snapshot, nil
}

func (r *SQLiteRepository) querySnapshots(ctx context.Context, query string, args ...any) ([]models.CoinSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.CoinSnapshot{}
	for rows.Next() {
		snapshot, err := scanSQLiteSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return snapshots, nil
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, orderBy models.SnapshotOrder, limit int) ([]models.CoinSnapshot, error) {
	order, err := orderClause(orderBy, func(col string) string { return "CAST(" + col + " AS REAL)" })
	if err != nil {
		return nil, err
	}
	return r.querySnapshots(ctx, `SELECT `+snapshotColumns+` FROM coin_snapshots ORDER BY `+order+` LIMIT ?`, limit)
}

func (r *SQLiteRepository) SearchSnapshots(ctx context.Context, query string, limit int) ([]models.CoinSnapshot, error) {
	pattern := likePattern(query)
	return r.querySnapshots(ctx, `
		SELECT `+snapshotColumns+` FROM coin_snapshots
		WHERE lower(id) LIKE ? ESCAPE '\' OR lower(symbol) LIKE ? ESCAPE '\' OR lower(name) LIKE ? ESCAPE '\'
		ORDER BY market_cap_rank ASC NULLS LAST, id ASC
		LIMIT ?`, pattern, pattern, pattern, limit)
}

func (r *SQLiteRepository) UpsertPricePoint(ctx context.Context, coinID string, date time.Time, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO price_points (coin_id, date, price) VALUES (?, ?, ?)
		ON CONFLICT(coin_id, date) DO UPDATE SET price = excluded.price`,
		coinID, models.DateOf(date).Format(dateLayout), price.String())
	if err != nil {
		return fmt.Errorf("failed to upsert price point for %s: %w", coinID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListPricePoints(ctx context.Context, coinID string, since time.Time) ([]models.PricePoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, price FROM price_points
		WHERE coin_id = ? AND date >= ?
		ORDER BY date ASC`, coinID, models.DateOf(since).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query price points for %s: %w", coinID, err)
	}
	defer rows.Close()

	points := []models.PricePoint{}
	for rows.Next() {
		var dateStr, priceStr string
		if err := rows.Scan(&dateStr, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid price point date %q: %w", dateStr, err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid price point price %q: %w", priceStr, err)
		}
		points = append(points, models.PricePoint{CoinID: coinID, Date: date, Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return points, nil
}

func (r *SQLiteRepository) PrunePricePoints(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM price_points WHERE date < ?`, models.DateOf(before).Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune price points: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) SaveGlobalStats(ctx context.Context, stats models.GlobalStats) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO global_stats (total_market_cap, total_volume, active_cryptocurrencies,
			market_cap_percentage_btc, market_cap_percentage_eth, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stats.TotalMarketCapUSD.String(), stats.TotalVolumeUSD.String(), stats.ActiveCryptocurrencies,
		decimalArg(stats.MarketCapPercentageBTC), decimalArg(stats.MarketCapPercentageETH),
		stats.UpdatedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save global stats: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LatestGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	var raw globalStatsRow
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT `+globalStatsColumns+` FROM global_stats
		ORDER BY updated_at DESC, id DESC LIMIT 1`).Scan(raw.dest(&updatedAt)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get global stats: %w", err)
	}
	return raw.toStats(time.UnixMilli(updatedAt))
}

func (r *SQLiteRepository) PruneGlobalStats(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM global_stats WHERE id NOT IN (
			SELECT id FROM global_stats ORDER BY updated_at DESC, id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune global stats: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
