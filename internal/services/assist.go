package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/civicgrid/proposal-service/internal/llm"
	"github.com/civicgrid/proposal-service/internal/model"
)

const (
	summarySystemPrompt = "You are an AI assistant that generates concise summaries for civic proposals, " +
		"framing them as part of a decentralized platform where citizens submit ideas for improving " +
		"their city (e.g. new parks, safer roads, digital services)."

	answerSystemPrompt = "You are an AI assistant that provides concise and accurate answers about civic proposals."

	emptyContext = "No relevant proposals found in the database."

	summaryMaxTokens = 60
	answerMaxTokens  = 100
	samplingTemp     = 0.7
)

// AssistService generates proposal summaries and answers questions over the
// stored proposals (single-round retrieval-augmented generation).
type AssistService struct {
	proposals *ProposalService
	gen       llm.Provider
	askTopK   int
}

func NewAssistService(proposals *ProposalService, gen llm.Provider, askTopK int) *AssistService {
	return &AssistService{proposals: proposals, gen: gen, askTopK: askTopK}
}

// GenerateSummary asks the generation provider for a 1-2 sentence summary
// of raw proposal text. Output is returned trimmed and otherwise unchecked.
func (s *AssistService) GenerateSummary(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("Summarize the following proposal text in 1-2 concise sentences, capturing the main idea:\n%q", text)

	out, err := s.gen.Complete(ctx, llm.Request{
		System:      summarySystemPrompt,
		Prompt:      prompt,
		MaxTokens:   summaryMaxTokens,
		Temperature: samplingTemp,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return out, nil
}

// AnswerQuery retrieves the nearest proposals as context and generates an
// answer to the query. Retrieval is unconditional and single-round; when
// nothing matches, an explicit no-results context is substituted.
func (s *AssistService) AnswerQuery(ctx context.Context, query string) (string, error) {
	recs, err := s.proposals.SearchProposals(ctx, query, s.askTopK)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"You are an AI assistant that answers questions about civic proposals stored in a database.\n"+
			"Based on the following context, provide a concise answer (2-3 sentences) to the user's query: %q\n"+
			"If no relevant proposals are found, state that clearly.\n"+
			"Context:\n%s",
		query, renderContext(recs),
	)

	out, err := s.gen.Complete(ctx, llm.Request{
		System:      answerSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   answerMaxTokens,
		Temperature: samplingTemp,
	})
	if err != nil {
		return "", fmt.Errorf("answer query: %w", err)
	}
	return out, nil
}

// renderContext turns retrieved records into the structured text block fed
// to the generation provider.
func renderContext(recs []model.ProposalRecord) string {
	if len(recs) == 0 {
		return emptyContext
	}

	var b strings.Builder
	b.WriteString("The following proposals were found in the database:\n")
	for i, rec := range recs {
		fmt.Fprintf(&b, "Proposal %d:\n", i+1)
		fmt.Fprintf(&b, "- Text: %s\n", orNA(rec.Text))
		fmt.Fprintf(&b, "- Summary: %s\n", orNA(rec.Summary))
		fmt.Fprintf(&b, "- Category: %s\n", orNA(rec.Category))
		fmt.Fprintf(&b, "- Submitter: %s\n", orNA(rec.Submitter))
		fmt.Fprintf(&b, "- Timestamp: %s\n", orNA(rec.Timestamp))
		fmt.Fprintf(&b, "- Likes: %d\n", rec.Likes)
		fmt.Fprintf(&b, "- Dislikes: %d\n\n", rec.Dislikes)
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
