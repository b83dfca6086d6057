package repository

import (
	"context"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

// Pool selects the free or paid credit collection.
type Pool string

const (
	FreePool Pool = "free"
	PaidPool Pool = "paid"
)

// CreditRepository defines the two per-category credit pools.
type CreditRepository interface {
	// EnsureRecord creates the (uid, category) record with the given balance
	// if and only if it does not exist yet.
	EnsureRecord(ctx context.Context, pool Pool, uid string, category, credits int) error

	// ConsumeOne atomically decrements a record whose balance is still
	// positive and refreshes its updated timestamp. Returns false when no
	// such record exists; the balance can never go negative.
	ConsumeOne(ctx context.Context, pool Pool, uid string, category int) (bool, error)

	// Refund adds one credit back, used when a later publish step fails.
	Refund(ctx context.Context, pool Pool, uid string, category int) error

	Get(ctx context.Context, pool Pool, uid string, category int) (*entity.CreditRecord, error)
}
