package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

// PriceRepository provides access to imported end-of-day stock prices.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// FindPrice returns the stored close price for a symbol on an exact trade
// date. Fails with ErrPriceNotFound when no record exists.
func (r *PriceRepository) FindPrice(symbol string, date time.Time) (decimal.Decimal, error) {
	query := `SELECT close_price FROM stock_price WHERE symbol = ? AND trade_date = ?`

	var priceStr string
	err := r.db.QueryRow(query, symbol, formatDate(date)).Scan(&priceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s on %s", apperrors.ErrPriceNotFound, symbol, formatDate(date))
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to query stock_price table: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse stored close price: %w", err)
	}

	return price, nil
}

// ListPrices returns the stored prices for a symbol within a date range,
// ordered ascending by trade date. Used by the administrative browsing
// endpoint.
func (r *PriceRepository) ListPrices(symbol string, from, to time.Time) ([]model.StockPrice, error) {
	query := `
		SELECT id, symbol, trade_date, close_price, created_at
		FROM stock_price
		WHERE symbol = ? AND trade_date >= ? AND trade_date <= ?
		ORDER BY trade_date ASC
	`

	rows, err := r.db.Query(query, symbol, formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.StockPrice{}
	for rows.Next() {
		var tradeDateStr, priceStr, createdAtStr string
		var p model.StockPrice

		if err := rows.Scan(&p.ID, &p.Symbol, &tradeDateStr, &priceStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan stock_price results: %w", err)
		}

		p.TradeDate, err = ParseTime(tradeDateStr)
		if err != nil || p.TradeDate.IsZero() {
			return nil, fmt.Errorf("failed to parse trade_date: %w", err)
		}

		p.ClosePrice, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored close price: %w", err)
		}

		p.CreatedAt, err = ParseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}

		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_price table: %w", err)
	}

	return prices, nil
}

// Upsert inserts a close price if none exists for (symbol, trade_date).
// Returns true when a row was created. Existing prices are never
// overwritten: imported bhavcopy data is authoritative on first write.
func (r *PriceRepository) Upsert(symbol string, date time.Time, closePrice decimal.Decimal) (bool, error) {
	query := `
		INSERT INTO stock_price (id, symbol, trade_date, close_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol, trade_date) DO NOTHING
	`

	result, err := r.db.Exec(query, uuid.New().String(), symbol, formatDate(date), closePrice.String())
	if err != nil {
		return false, fmt.Errorf("failed to insert stock price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// BulkUpsert inserts a batch of prices inside one transaction and returns
// the number of rows created. Used by the daily refresh job, which loads a
// whole bhavcopy at once.
func (r *PriceRepository) BulkUpsert(prices []model.StockPrice) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.Prepare(`
		INSERT INTO stock_price (id, symbol, trade_date, close_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol, trade_date) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	created := 0
	for _, p := range prices {
		result, err := stmt.Exec(uuid.New().String(), p.Symbol, formatDate(p.TradeDate), p.ClosePrice.String())
		if err != nil {
			return 0, fmt.Errorf("failed to insert stock price for %s: %w", p.Symbol, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected > 0 {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price import: %w", err)
	}

	return created, nil
}
