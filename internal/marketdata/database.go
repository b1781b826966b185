// Package marketdata holds the external collaborators that feed the core:
// a Postgres repository for historical daily closes and an HTTP quote
// adapter. The core itself never touches the network or the database.
package marketdata

import (
	"context"
	"errors"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"quantfolio/types"
)

// Global error declarations.
var (
	ErrAssetNotFound = errors.New("not found in datasource")
	ErrNoCloses      = errors.New("no closes found in datasource")
)

// Asset is a tradable instrument row.
type Asset struct {
	ID     int
	Ticker string
	Name   string
}

type assetsRepository interface {
	QueryAsset(ctx context.Context, ticker string) (Asset, error)
}
type closesRepository interface {
	QueryDailyCloses(ctx context.Context, assetID, limit int) ([]decimal.Decimal, error)
}

// Database holds the connection pool and the query surface.
type Database struct {
	assets assetsRepository
	closes closesRepository
	pool   *pgxpool.Pool
}

// NewDatabase creates a Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := pool.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	q := pgxQueries{pool: pool}
	return Database{assets: q, closes: q, pool: pool}, nil
}

func (db *Database) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetAssetByTicker retrieves the asset row for a ticker.
func (db *Database) GetAssetByTicker(ticker string, ctx context.Context) (*Asset, error) {
	asset, err := db.assets.QueryAsset(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

// GetDailyCloses returns the trailing lookback daily closes for an asset in
// chronological ascending order.
func (db *Database) GetDailyCloses(assetID int, ticker string, lookback int, ctx context.Context) (types.PriceSeries, error) {
	rows, err := db.closes.QueryDailyCloses(ctx, assetID, lookback)
	if err != nil {
		return types.PriceSeries{}, err
	}
	if len(rows) == 0 {
		return types.PriceSeries{}, ErrNoCloses
	}
	closes := make([]float64, len(rows))
	for i, c := range rows {
		closes[i] = c.InexactFloat64()
	}
	return types.PriceSeries{Symbol: ticker, Closes: closes}, nil
}

// GetPriceSeries resolves a ticker and fetches its trailing daily closes.
func (db *Database) GetPriceSeries(ticker string, lookback int, ctx context.Context) (types.PriceSeries, error) {
	asset, err := db.GetAssetByTicker(ticker, ctx)
	if err != nil {
		return types.PriceSeries{}, err
	}
	return db.GetDailyCloses(asset.ID, asset.Ticker, lookback, ctx)
}

type pgxQueries struct {
	pool *pgxpool.Pool
}

func (q pgxQueries) QueryAsset(ctx context.Context, ticker string) (Asset, error) {
	var a Asset
	row := q.pool.QueryRow(ctx,
		`SELECT id, ticker, name FROM assets WHERE ticker = $1`, ticker)
	if err := row.Scan(&a.ID, &a.Ticker, &a.Name); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (q pgxQueries) QueryDailyCloses(ctx context.Context, assetID, limit int) ([]decimal.Decimal, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT close FROM (
			SELECT bucket, close FROM daily_candles
			WHERE asset_id = $1
			ORDER BY bucket DESC
			LIMIT $2
		) trailing ORDER BY bucket ASC`, assetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []decimal.Decimal
	for rows.Next() {
		var c decimal.Decimal
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		closes = append(closes, c)
	}
	return closes, rows.Err()
}
