package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

// ActionRepository provides access to persisted corporate action records.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new ActionRepository.
func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// FindActions returns the corporate actions for a symbol with an ex-date
// strictly after `after` and at or before `until`, ordered ascending by
// ex-date. Actions sharing an ex-date keep insertion order: rowid is the
// explicit secondary sort key so results stay deterministic.
func (r *ActionRepository) FindActions(symbol string, after, until time.Time) ([]model.CorporateAction, error) {
	query := `
		SELECT id, symbol, ex_date, action_type, factor, cash_value, raw_purpose, created_at
		FROM corporate_action
		WHERE symbol = ? AND ex_date > ? AND ex_date <= ?
		ORDER BY ex_date ASC, rowid ASC
	`

	rows, err := r.db.Query(query, symbol, formatDate(after), formatDate(until))
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate_action table: %w", err)
	}
	defer rows.Close()

	return scanActions(rows)
}

// ListActions returns every corporate action for a symbol, newest first.
// Used by the administrative browsing endpoint.
func (r *ActionRepository) ListActions(symbol string) ([]model.CorporateAction, error) {
	query := `
		SELECT id, symbol, ex_date, action_type, factor, cash_value, raw_purpose, created_at
		FROM corporate_action
		WHERE symbol = ?
		ORDER BY ex_date DESC, rowid DESC
	`

	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate_action table: %w", err)
	}
	defer rows.Close()

	return scanActions(rows)
}

// Upsert inserts a corporate action if no record with the same identity
// (symbol, ex_date, action_type, raw_purpose) exists. Returns true when a
// row was created, false when the action was already present, making
// re-import idempotent.
func (r *ActionRepository) Upsert(action model.CorporateAction) (bool, error) {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}

	query := `
		INSERT INTO corporate_action (id, symbol, ex_date, action_type, factor, cash_value, raw_purpose)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, ex_date, action_type, raw_purpose) DO NOTHING
	`

	result, err := r.db.Exec(
		query,
		action.ID,
		action.Symbol,
		formatDate(action.ExDate),
		string(action.Type),
		decimalToNullString(action.Factor),
		decimalToNullString(action.CashValue),
		action.RawPurpose,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert corporate action: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

func scanActions(rows *sql.Rows) ([]model.CorporateAction, error) {
	actions := []model.CorporateAction{}

	for rows.Next() {
		var exDateStr, createdAtStr string
		var factorStr, cashStr sql.NullString
		var a model.CorporateAction

		err := rows.Scan(
			&a.ID,
			&a.Symbol,
			&exDateStr,
			&a.Type,
			&factorStr,
			&cashStr,
			&a.RawPurpose,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corporate_action results: %w", err)
		}

		a.ExDate, err = ParseTime(exDateStr)
		if err != nil || a.ExDate.IsZero() {
			return nil, fmt.Errorf("failed to parse ex_date: %w", err)
		}

		a.CreatedAt, err = ParseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}

		a.Factor, err = nullStringToDecimal(factorStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse factor: %w", err)
		}

		a.CashValue, err = nullStringToDecimal(cashStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cash_value: %w", err)
		}

		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corporate_action table: %w", err)
	}

	return actions, nil
}

// Decimals are stored as TEXT so no precision is lost crossing the database
// boundary.
func decimalToNullString(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullStringToDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
