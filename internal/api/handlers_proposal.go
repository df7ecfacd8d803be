package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	respond "github.com/civicgrid/proposal-service/internal/api/respond"
	"github.com/civicgrid/proposal-service/internal/api/validate"
	"github.com/civicgrid/proposal-service/internal/model"
	"github.com/civicgrid/proposal-service/internal/services"
)

// ProposalHandler exposes the proposal REST endpoints.
type ProposalHandler struct {
	svc        *services.ProposalService
	searchTopK int
}

func NewProposalHandler(svc *services.ProposalService, searchTopK int) *ProposalHandler {
	return &ProposalHandler{svc: svc, searchTopK: searchTopK}
}

// Hello GET /api/hello
func (h *ProposalHandler) Hello(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello from the backend!"})
}

// StoreProposal POST /api/store_proposal
func (h *ProposalHandler) StoreProposal(w http.ResponseWriter, r *http.Request) {
	var p model.Proposal
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.VoteCounts(p.Likes, p.Dislikes); err != nil {
		log.Error().Int("proposalId", p.ID).Int("likes", p.Likes).Int("dislikes", p.Dislikes).
			Msg("invalid vote counts on store")
		respond.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.svc.StoreProposal(r.Context(), &p); err != nil {
		log.Error().Stack().Err(err).Int("proposalId", p.ID).Msg("failed to store proposal")
		respond.WriteInternalError(w, err.Error())
		return
	}
	log.Info().Int("proposalId", p.ID).Msg("proposal stored")
	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Proposal %d stored successfully!", p.ID),
	})
}

// SearchProposals GET /api/search_proposals/{query}
func (h *ProposalHandler) SearchProposals(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	recs, err := h.svc.SearchProposals(r.Context(), query, h.searchTopK)
	if err != nil {
		log.Error().Stack().Err(err).Str("query", query).Msg("failed to search proposals")
		respond.WriteInternalError(w, err.Error())
		return
	}
	if recs == nil {
		recs = []model.ProposalRecord{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"results": recs})
}

// GetProposal GET /api/get_proposal/{proposal_id}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["proposal_id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respond.WriteBadRequest(w, "proposal_id must be an integer")
		return
	}

	rec, err := h.svc.GetProposal(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			log.Error().Int("proposalId", id).Msg("proposal not found")
			respond.WriteNotFound(w, fmt.Sprintf("Proposal %d not found", id))
			return
		}
		log.Error().Stack().Err(err).Int("proposalId", id).Msg("failed to fetch proposal")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"proposal": rec})
}

// UpdateVote POST /api/update_vote
func (h *ProposalHandler) UpdateVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProposalID int `json:"proposalId"`
		Likes      int `json:"likes"`
		Dislikes   int `json:"dislikes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.VoteCounts(req.Likes, req.Dislikes); err != nil {
		log.Error().Int("proposalId", req.ProposalID).Int("likes", req.Likes).Int("dislikes", req.Dislikes).
			Msg("invalid vote counts on update")
		respond.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.svc.UpdateVotes(r.Context(), req.ProposalID, req.Likes, req.Dislikes); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			log.Error().Int("proposalId", req.ProposalID).Msg("proposal not found for vote update")
			respond.WriteNotFound(w, fmt.Sprintf("Proposal %d not found", req.ProposalID))
			return
		}
		log.Error().Stack().Err(err).Int("proposalId", req.ProposalID).Msg("failed to update votes")
		respond.WriteInternalError(w, err.Error())
		return
	}
	log.Info().Int("proposalId", req.ProposalID).Int("likes", req.Likes).Int("dislikes", req.Dislikes).
		Msg("votes updated")
	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Updated votes for proposal %d", req.ProposalID),
	})
}
