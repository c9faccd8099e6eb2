package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidIdentity indicates a malformed entry date or a negative
	// chunk index. Rejected before any call reaches the vector index.
	ErrInvalidIdentity = errors.New("invalid record identity")

	// ErrConfirmationRequired indicates a destructive operation was called
	// without its confirmation token. The index is left untouched.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrSourceUnavailable indicates the entry source cannot be reached.
	// Fatal for the specific operation; no partial state is left behind.
	ErrSourceUnavailable = errors.New("entry source unavailable")

	// ErrIndexUnavailable indicates the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and semantic search are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generative capability is missing.
	// Answering degrades to search-only mode rather than failing.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
