package model

import "fmt"

// Proposal is the inbound payload for storing a civic proposal.
// Timestamp is caller-supplied and opaque; the service never parses it.
type Proposal struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Submitter string `json:"submitter"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
	HasVoted  *bool  `json:"hasVoted,omitempty"`
	UserVote  *bool  `json:"userVote,omitempty"`
}

// ProposalRecord is the metadata stored alongside the vector and returned
// verbatim by lookup and search. ID is stringified on ingest; VectorID is
// the deterministic storage key.
type ProposalRecord struct {
	ID        string `json:"id"`
	VectorID  string `json:"vectorId"`
	Text      string `json:"text"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Submitter string `json:"submitter"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
	HasVoted  bool   `json:"hasVoted"`
	UserVote  bool   `json:"userVote"`
}

// StoredProposal pairs a record with its stored vector so vote updates can
// re-upsert without recomputing the embedding.
type StoredProposal struct {
	Record ProposalRecord
	Vector []float32
}

// StorageKey derives the vector-store key for a proposal id. The mapping
// must stay stable: fetch and vote update rely on it.
func StorageKey(id int) string {
	return fmt.Sprintf("proposal-%d", id)
}

// Record builds the storable metadata for a proposal. Optional vote-state
// booleans default to false in the stored shape.
func (p *Proposal) Record() ProposalRecord {
	rec := ProposalRecord{
		ID:        fmt.Sprintf("%d", p.ID),
		VectorID:  StorageKey(p.ID),
		Text:      p.Text,
		Summary:   p.Summary,
		Category:  p.Category,
		Submitter: p.Submitter,
		Timestamp: p.Timestamp,
		Likes:     p.Likes,
		Dislikes:  p.Dislikes,
	}
	if p.HasVoted != nil {
		rec.HasVoted = *p.HasVoted
	}
	if p.UserVote != nil {
		rec.UserVote = *p.UserVote
	}
	return rec
}

// EmbeddingInput is the text the proposal vector is computed from.
func (p *Proposal) EmbeddingInput() string {
	return p.Text + " " + p.Summary
}
