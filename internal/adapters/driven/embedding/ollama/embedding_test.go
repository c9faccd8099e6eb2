package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestNewEmbeddingService_Overrides(t *testing.T) {
	svc := NewEmbeddingService(Config{
		BaseURL:    "http://embed-host:11434",
		Model:      "all-minilm",
		Dimensions: 384,
	})

	assert.Equal(t, "all-minilm", svc.ModelName())
	assert.Equal(t, 384, svc.Dimensions())
}
