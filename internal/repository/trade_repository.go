package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"papertrade/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface on PostgreSQL.
// The trades table is append-only; this type never issues UPDATE or DELETE.
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Append persists a new trade and fills in the ledger-assigned ID and
// creation timestamp.
func (r *TradeRepositoryImpl) Append(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (
			user_id, symbol, side, quantity, fill_price, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		trade.UserID,
		trade.Symbol,
		trade.Side,
		trade.Quantity,
		trade.FillPrice,
		trade.Status,
	).Scan(&trade.ID, &trade.CreatedAt)

	if err != nil {
		return &domain.LedgerError{Op: "append", Err: err}
	}

	return nil
}

// ListByUser retrieves every trade placed by a user, newest first.
func (r *TradeRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	query := `
		SELECT id, user_id, symbol, side, quantity, fill_price, status, created_at
		FROM trades
		WHERE user_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, &domain.LedgerError{Op: "list", Err: err}
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		trade := &domain.Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.UserID,
			&trade.Symbol,
			&trade.Side,
			&trade.Quantity,
			&trade.FillPrice,
			&trade.Status,
			&trade.CreatedAt,
		)
		if err != nil {
			return nil, &domain.LedgerError{Op: "scan", Err: err}
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.LedgerError{Op: "list", Err: err}
	}

	return trades, nil
}
