package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		wantErr        bool
		wantModel      string
		wantDimensions int
	}{
		{
			name:    "missing API key returns error",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:           "defaults applied",
			cfg:            Config{APIKey: "test-key"},
			wantModel:      DefaultModel,
			wantDimensions: 1536,
		},
		{
			name:           "known model dimensions",
			cfg:            Config{APIKey: "test-key", Model: "text-embedding-3-large"},
			wantModel:      "text-embedding-3-large",
			wantDimensions: 3072,
		},
		{
			name:           "explicit dimensions override",
			cfg:            Config{APIKey: "test-key", Model: "text-embedding-3-small", Dimensions: 256},
			wantModel:      "text-embedding-3-small",
			wantDimensions: 256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewEmbeddingService(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.Equal(t, tt.wantDimensions, svc.Dimensions())
		})
	}
}

func TestNewEmbeddingService_UnknownModelFallsBack(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", Model: "future-model"})
	require.NoError(t, err)
	assert.Equal(t, 1536, svc.Dimensions())

	svc, err = NewEmbeddingService(Config{APIKey: "test-key", Model: "future-model", Dimensions: 512})
	require.NoError(t, err)
	assert.Equal(t, 512, svc.Dimensions())
}
