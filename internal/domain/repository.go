package domain

import (
	"context"

	"github.com/google/uuid"
)

// TradeRepository is the append-only trade ledger contract. The ledger owns
// trade storage; the accounting engine only reads it.
type TradeRepository interface {
	// Append persists a new trade and fills in its ledger-assigned ID and
	// creation timestamp. Existing rows are never updated or deleted.
	Append(ctx context.Context, trade *Trade) error

	// ListByUser retrieves every trade placed by a user. The accounting
	// engine does not depend on any particular ordering.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Trade, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
