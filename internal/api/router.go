package api

import (
	"github.com/gorilla/mux"

	"github.com/civicgrid/proposal-service/internal/api/recovery"
	"github.com/civicgrid/proposal-service/internal/services"
)

// NewRouter wires the HTTP routes to handlers.
func NewRouter(proposals *services.ProposalService, assist *services.AssistService, searchTopK int) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	proposal := NewProposalHandler(proposals, searchTopK)
	root.HandleFunc("/api/hello", proposal.Hello).Methods("GET")
	root.HandleFunc("/api/store_proposal", proposal.StoreProposal).Methods("POST")
	root.HandleFunc("/api/search_proposals/{query}", proposal.SearchProposals).Methods("GET")
	root.HandleFunc("/api/update_vote", proposal.UpdateVote).Methods("POST")
	root.HandleFunc("/api/get_proposal/{proposal_id}", proposal.GetProposal).Methods("GET")

	assistHandler := NewAssistHandler(assist)
	root.HandleFunc("/api/generate_summary", assistHandler.GenerateSummary).Methods("POST")
	root.HandleFunc("/api/ask_proposal", assistHandler.AskProposal).Methods("POST")

	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}
