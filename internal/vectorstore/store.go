package vectorstore

import (
	"context"

	"github.com/civicgrid/proposal-service/internal/model"
)

// Store persists proposal vectors and metadata and serves nearest-neighbor
// search. Keys are the deterministic storage keys from model.StorageKey.
type Store interface {
	// Upsert inserts or overwrites the record stored under key.
	Upsert(ctx context.Context, key string, vec []float32, rec model.ProposalRecord) error

	// Fetch returns the stored record and vector for key, or
	// model.ErrNotFound when absent.
	Fetch(ctx context.Context, key string) (*model.StoredProposal, error)

	// Search returns up to limit records nearest to vec, in the store's
	// ranking order. No match yields an empty slice, not an error.
	Search(ctx context.Context, vec []float32, limit int) ([]model.ProposalRecord, error)
}

// HealthPinger is optionally implemented by a Store to expose specialized
// health check logic. Returns nil when healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
