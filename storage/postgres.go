package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS coin_snapshots (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		current_price NUMERIC NOT NULL,
		total_volume NUMERIC,
		price_change_24h NUMERIC,
		price_change_percentage_24h NUMERIC,
		market_cap NUMERIC,
		market_cap_rank INTEGER,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS price_points (
		coin_id TEXT NOT NULL,
		date DATE NOT NULL,
		price NUMERIC NOT NULL,
		PRIMARY KEY (coin_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS global_stats (
		id BIGSERIAL PRIMARY KEY,
		total_market_cap NUMERIC NOT NULL,
		total_volume NUMERIC NOT NULL,
		active_cryptocurrencies INTEGER NOT NULL,
		market_cap_percentage_btc NUMERIC,
		market_cap_percentage_eth NUMERIC,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		session_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		last_activity TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES chat_sessions (session_id) ON DELETE CASCADE,
		message_type TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_coin_snapshots_rank ON coin_snapshots (market_cap_rank)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages (session_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_sessions_activity ON chat_sessions (last_activity)`,
}

// Numeric columns are read back as text so they round-trip through decimal.Decimal exactly
const pgSnapshotColumns = `id, symbol, name, image_url, current_price::text, total_volume::text,
	price_change_24h::text, price_change_percentage_24h::text, market_cap::text, market_cap_rank, last_updated`

const pgGlobalStatsColumns = `total_market_cap::text, total_volume::text, active_cryptocurrencies,
	market_cap_percentage_btc::text, market_cap_percentage_eth::text, updated_at`

// PostgresRepository stores snapshots in PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository connects to the database at dsn
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostgresRepository{db: pool}, nil
}

// Migrate creates the schema if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) UpsertSnapshot(ctx context.Context, s models.CoinSnapshot) error {
	args := append(snapshotArgs(s), s.LastUpdated.UTC())
	_, err := r.db.Exec(ctx, `
		INSERT INTO coin_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7::text::numeric,
			$8::text::numeric, $9::text::numeric, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			current_price = EXCLUDED.current_price,
			total_volume = EXCLUDED.total_volume,
			price_change_24h = EXCLUDED.price_change_24h,
			price_change_percentage_24h = EXCLUDED.price_change_percentage_24h,
			market_cap = EXCLUDED.market_cap,
			market_cap_rank = EXCLUDED.market_cap_rank,
			last_updated = EXCLUDED.last_updated`, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", s.ID, err)
	}
	return nil
}

func scanPostgresSnapshot(row rowScanner) (models.CoinSnapshot, error) {
	var raw snapshotRow
	var lastUpdated time.Time
	if err := row.Scan(raw.dest(&lastUpdated)...); err != nil {
		return models.CoinSnapshot{}, err
	}
	return raw.toSnapshot(lastUpdated)
}

func (r *PostgresRepository) GetSnapshot(ctx context.Context, coinID string) (*models.CoinSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pgSnapshotColumns+` FROM coin_snapshots WHERE id = $1`, coinID)
	snapshot, err := scanPostgresSnapshot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", coinID, err)
	}
	return &snapshot, nil
}

func (r *PostgresRepository) querySnapshots(ctx context.Context, query string, args ...any) ([]models.CoinSnapshot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.CoinSnapshot{}
	for rows.Next() {
		snapshot, err := scanPostgresSnapshot(rows)
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

func (r *PostgresRepository) ListSnapshots(ctx context.Context, orderBy models.SnapshotOrder, limit int) ([]models.CoinSnapshot, error) {
	order, err := orderClause(orderBy, func(col string) string { return col })
	if err != nil {
		return nil, err
	}
	return r.querySnapshots(ctx, `SELECT `+pgSnapshotColumns+` FROM coin_snapshots ORDER BY `+order+` LIMIT $1`, limit)
}

func (r *PostgresRepository) SearchSnapshots(ctx context.Context, query string, limit int) ([]models.CoinSnapshot, error) {
	return r.querySnapshots(ctx, `
		SELECT `+pgSnapshotColumns+` FROM coin_snapshots
		WHERE lower(id) LIKE $1 OR lower(symbol) LIKE $1 OR lower(name) LIKE $1
		ORDER BY market_cap_rank ASC NULLS LAST, id ASC
		LIMIT $2`, likePattern(query), limit)
}

func (r *PostgresRepository) UpsertPricePoint(ctx context.Context, coinID string, date time.Time, price decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO price_points (coin_id, date, price) VALUES ($1, $2::text::date, $3::text::numeric)
		ON CONFLICT (coin_id, date) DO UPDATE SET price = EXCLUDED.price`,
		coinID, models.DateOf(date).Format(dateLayout), price.String())
	if err != nil {
		return fmt.Errorf("failed to upsert price point for %s: %w", coinID, err)
	}
	return nil
}

func (r *PostgresRepository) ListPricePoints(ctx context.Context, coinID string, since time.Time) ([]models.PricePoint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD'), price::text FROM price_points
		WHERE coin_id = $1 AND date >= $2::text::date
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

func (r *PostgresRepository) PrunePricePoints(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM price_points WHERE date < $1::text::date`, models.DateOf(before).Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune price points: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) SaveGlobalStats(ctx context.Context, stats models.GlobalStats) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO global_stats (`+globalStatsColumns+`)
		VALUES ($1::text::numeric, $2::text::numeric, $3, $4::text::numeric, $5::text::numeric, $6)`,
		stats.TotalMarketCapUSD.String(), stats.TotalVolumeUSD.String(), stats.ActiveCryptocurrencies,
		decimalArg(stats.MarketCapPercentageBTC), decimalArg(stats.MarketCapPercentageETH),
		stats.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save global stats: %w", err)
	}
	return nil
}

func (r *PostgresRepository) LatestGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	var raw globalStatsRow
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, `
		SELECT `+pgGlobalStatsColumns+` FROM global_stats
		ORDER BY updated_at DESC, id DESC LIMIT 1`).Scan(raw.dest(&updatedAt)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get global stats: %w", err)
	}
	return raw.toStats(updatedAt)
}

func (r *PostgresRepository) PruneGlobalStats(ctx context.Context, keep int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM global_stats WHERE id NOT IN (
			SELECT id FROM global_stats ORDER BY updated_at DESC, id DESC LIMIT $1)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune global stats: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}
