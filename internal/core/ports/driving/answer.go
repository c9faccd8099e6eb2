package driving

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// AnswerService synthesizes citation-backed answers from retrieved chunks.
type AnswerService interface {
	// Answer retrieves the k most relevant chunks for the question and asks
	// the generative capability to answer from them. When that capability is
	// unavailable the answer degrades to the raw search results; Answer
	// never fails because of a missing or broken model.
	Answer(ctx context.Context, question string, k int) (*domain.Answer, error)
}
