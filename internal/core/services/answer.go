package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// Ensure AnswerSynthesizer implements the interface.
var _ driving.AnswerService = (*AnswerSynthesizer)(nil)

// DefaultContextBudget is the default context block size in characters.
const DefaultContextBudget = 6000

// answerTemplate constrains the model to the supplied journal excerpts.
const answerTemplate = `Based on the following journal entries, please answer the question.

%s

Question: %s

Answer based only on the journal entries provided above. If the entries don't contain enough information to answer, say so.`

// AnswerSynthesizer assembles retrieved chunks into a bounded context and
// asks the generative capability for a citation-backed answer. Synthesis
// never writes to the index.
type AnswerSynthesizer struct {
	query driving.QueryService
	llm   driven.LLMService

	// contextBudget bounds the assembled context block, in characters.
	contextBudget int
}

// NewAnswerSynthesizer creates a new answer synthesizer.
// The llm parameter is optional (can be nil): without it every answer
// degrades to search-only mode.
func NewAnswerSynthesizer(query driving.QueryService, llm driven.LLMService, contextBudget int) *AnswerSynthesizer {
	if contextBudget <= 0 {
		contextBudget = DefaultContextBudget
	}
	return &AnswerSynthesizer{
		query:         query,
		llm:           llm,
		contextBudget: contextBudget,
	}
}

// Answer retrieves the k most relevant chunks and synthesizes an answer
// from them. Citations cover every chunk included in the context, not just
// the ones the model happened to quote: which citation a model "used" is
// not verifiable, attaching the full context is always correct.
func (s *AnswerSynthesizer) Answer(ctx context.Context, question string, k int) (*domain.Answer, error) {
	if k <= 0 {
		k = DefaultK
	}

	results, err := s.query.Search(ctx, question, domain.SearchOptions{K: k})
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	included := s.fitToBudget(results)
	citations := make([]domain.Citation, 0, len(included))
	for _, r := range included {
		citations = append(citations, domain.Citation{
			EntryDate:  r.EntryDate,
			ChunkIndex: r.ChunkIndex,
			Excerpt:    r.Text,
		})
	}

	if s.llm == nil {
		logger.Info("No generative model configured, returning search results")
		return &domain.Answer{
			Text:        searchOnlyAnswer(included),
			Citations:   citations,
			Synthesized: false,
		}, nil
	}

	prompt := fmt.Sprintf(answerTemplate, contextBlock(included), question)
	logger.Debug("Prompt: %d chars, %d excerpts", len(prompt), len(included))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		// Cancellation belongs to the caller; only capability failures
		// degrade to search-only mode.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Generation failed, degrading to search-only mode: %v", err)
		return &domain.Answer{
			Text:        searchOnlyAnswer(included),
			Citations:   citations,
			Synthesized: false,
		}, nil
	}

	return &domain.Answer{
		Text:        strings.TrimSpace(text),
		Citations:   citations,
		Synthesized: true,
	}, nil
}

// fitToBudget drops excerpts until the tagged context fits the budget.
// Oldest entries go first: questions about a personal journal skew toward
// recent relevance.
func (s *AnswerSynthesizer) fitToBudget(results []domain.SearchResult) []domain.SearchResult {
	included := append([]domain.SearchResult(nil), results...)

	for len(included) > 1 && contextSize(included) > s.contextBudget {
		oldest := 0
		for i, r := range included {
			if r.EntryDate < included[oldest].EntryDate {
				oldest = i
			}
		}
		logger.Debug("Context over budget, dropping excerpt from %s", included[oldest].EntryDate)
		included = append(included[:oldest], included[oldest+1:]...)
	}

	return included
}

// contextBlock renders the excerpts, each tagged with its entry date.
func contextBlock(results []domain.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Journal Entry (%s):\n%s", r.EntryDate, r.Text))
	}
	return strings.Join(parts, "\n\n")
}

// contextSize is the rendered size of the context block in characters.
func contextSize(results []domain.SearchResult) int {
	return len(contextBlock(results))
}

// searchOnlyAnswer formats raw search results as the answer body for
// degraded mode.
func searchOnlyAnswer(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "No matching journal entries found."
	}

	var b strings.Builder
	b.WriteString("Answer synthesis is unavailable. Most relevant journal excerpts:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n[%s] %s\n", r.EntryDate, r.Text)
	}
	return b.String()
}
