package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/proposal-service/internal/llm"
	"github.com/civicgrid/proposal-service/internal/model"
	"github.com/civicgrid/proposal-service/internal/services"
)

type mockCompleter struct {
	output   string
	requests []llm.Request
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.requests = append(m.requests, req)
	return m.output, nil
}

func newAssistRouter(store *mockStore, gen *mockCompleter) http.Handler {
	proposals := services.NewProposalService(store, &mockEmbedder{})
	assist := services.NewAssistService(proposals, gen, 3)
	return NewRouter(proposals, assist, 2)
}

func TestGenerateSummary(t *testing.T) {
	gen := &mockCompleter{output: "A concise park proposal."}
	router := newAssistRouter(newMockStore(), gen)

	body := bytes.NewBufferString(`{"text": "Build a large park downtown with playgrounds."}`)
	req := httptest.NewRequest("POST", "/api/generate_summary", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "A concise park proposal.", resp["summary"])

	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].Prompt, "Build a large park downtown")
	assert.Contains(t, gen.requests[0].Prompt, "1-2 concise sentences")
	assert.Equal(t, 60, gen.requests[0].MaxTokens)
	assert.InDelta(t, 0.7, gen.requests[0].Temperature, 0.0001)
}

func TestGenerateSummary_MissingText(t *testing.T) {
	gen := &mockCompleter{}
	router := newAssistRouter(newMockStore(), gen)

	req := httptest.NewRequest("POST", "/api/generate_summary", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, gen.requests)
}

func TestAskProposal_WithRetrievedContext(t *testing.T) {
	store := newMockStore()
	store.hits = []model.ProposalRecord{
		{ID: "1", Text: "Build a park", Summary: "A new park", Category: "Parks", Submitter: "alice", Timestamp: "2024-01-01T00:00:00Z", Likes: 3, Dislikes: 1},
	}
	gen := &mockCompleter{output: "One park proposal exists."}
	router := newAssistRouter(store, gen)

	body := bytes.NewBufferString(`{"query": "are there park proposals?"}`)
	req := httptest.NewRequest("POST", "/api/ask_proposal", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "One park proposal exists.", resp["answer"])

	require.Len(t, gen.requests, 1)
	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "are there park proposals?")
	assert.Contains(t, prompt, "Proposal 1:")
	assert.Contains(t, prompt, "- Text: Build a park")
	assert.Contains(t, prompt, "- Submitter: alice")
	assert.Contains(t, prompt, "- Likes: 3")
	assert.Equal(t, 100, gen.requests[0].MaxTokens)
}

func TestAskProposal_NoMatchesUsesEmptyContext(t *testing.T) {
	gen := &mockCompleter{output: "No proposals matched."}
	router := newAssistRouter(newMockStore(), gen)

	body := bytes.NewBufferString(`{"query": "anything about bridges?"}`)
	req := httptest.NewRequest("POST", "/api/ask_proposal", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].Prompt, "No relevant proposals found in the database.")
}
