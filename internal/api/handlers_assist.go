package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	respond "github.com/civicgrid/proposal-service/internal/api/respond"
	"github.com/civicgrid/proposal-service/internal/api/validate"
	"github.com/civicgrid/proposal-service/internal/services"
)

// AssistHandler exposes the generation endpoints (summary, question answering).
type AssistHandler struct {
	svc *services.AssistService
}

func NewAssistHandler(svc *services.AssistService) *AssistHandler {
	return &AssistHandler{svc: svc}
}

// GenerateSummary POST /api/generate_summary
func (h *AssistHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("text", req.Text); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	summary, err := h.svc.GenerateSummary(r.Context(), req.Text)
	if err != nil {
		log.Error().Stack().Err(err).Msg("failed to generate summary")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// AskProposal POST /api/ask_proposal
func (h *AssistHandler) AskProposal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("query", req.Query); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	answer, err := h.svc.AnswerQuery(r.Context(), req.Query)
	if err != nil {
		log.Error().Stack().Err(err).Str("query", req.Query).Msg("failed to answer query")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
