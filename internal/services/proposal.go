package services

import (
	"context"
	"fmt"

	"github.com/civicgrid/proposal-service/internal/embeddings"
	"github.com/civicgrid/proposal-service/internal/model"
	"github.com/civicgrid/proposal-service/internal/vectorstore"
)

// ProposalService orchestrates proposal storage, lookup, search and voting.
type ProposalService struct {
	store vectorstore.Store
	emb   embeddings.EmbeddingProvider
}

func NewProposalService(store vectorstore.Store, emb embeddings.EmbeddingProvider) *ProposalService {
	return &ProposalService{store: store, emb: emb}
}

// StoreProposal embeds the proposal body and upserts it under its derived
// storage key. Storing the same id twice overwrites the earlier record.
func (s *ProposalService) StoreProposal(ctx context.Context, p *model.Proposal) error {
	vec, err := s.emb.Embed(ctx, p.EmbeddingInput())
	if err != nil {
		return fmt.Errorf("embed proposal %d: %w", p.ID, err)
	}
	if err := s.store.Upsert(ctx, model.StorageKey(p.ID), vec, p.Record()); err != nil {
		return fmt.Errorf("store proposal %d: %w", p.ID, err)
	}
	return nil
}

// SearchProposals embeds the query and returns the nearest stored records.
// An empty store yields an empty slice.
func (s *ProposalService) SearchProposals(ctx context.Context, query string, topK int) ([]model.ProposalRecord, error) {
	vec, err := s.emb.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	recs, err := s.store.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search proposals: %w", err)
	}
	return recs, nil
}

// GetProposal returns the stored record for proposalID, or model.ErrNotFound.
func (s *ProposalService) GetProposal(ctx context.Context, proposalID int) (*model.ProposalRecord, error) {
	stored, err := s.store.Fetch(ctx, model.StorageKey(proposalID))
	if err != nil {
		return nil, err
	}
	return &stored.Record, nil
}

// UpdateVotes overwrites the likes/dislikes counters of a stored proposal,
// re-upserting with the original vector. Read-modify-write with no
// concurrency token: concurrent updates to the same proposal race and the
// last writer wins.
func (s *ProposalService) UpdateVotes(ctx context.Context, proposalID, likes, dislikes int) error {
	key := model.StorageKey(proposalID)

	stored, err := s.store.Fetch(ctx, key)
	if err != nil {
		return err
	}

	rec := stored.Record
	rec.Likes = likes
	rec.Dislikes = dislikes

	if err := s.store.Upsert(ctx, key, stored.Vector, rec); err != nil {
		return fmt.Errorf("update votes for proposal %d: %w", proposalID, err)
	}
	return nil
}
