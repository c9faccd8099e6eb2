package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestHandleEntriesResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleEntriesResource(context.Background(), readRequest(uriScheme+"entries"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, uriScheme+"entries", result.Contents[0].URI)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "2024-02-10")
}

func TestHandleEntriesResource_NoAdminService(t *testing.T) {
	server := newTestServer(t)
	server.ports.Admin = nil

	result, err := server.handleEntriesResource(context.Background(), readRequest(uriScheme+"entries"))

	require.NoError(t, err)
	assert.Equal(t, "[]", result.Contents[0].Text)
}

func TestHandleStatsResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleStatsResource(context.Background(), readRequest(uriScheme+"stats"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "\"Entries\": 1")
}

func TestHandleStatsResource_NoAdminService(t *testing.T) {
	server := newTestServer(t)
	server.ports.Admin = nil

	result, err := server.handleStatsResource(context.Background(), readRequest(uriScheme+"stats"))

	require.NoError(t, err)
	assert.Equal(t, "{}", result.Contents[0].Text)
}

func TestHandleEntriesResource_Error(t *testing.T) {
	server := newTestServer(t)
	server.ports.Admin = &mockAdminService{err: assert.AnError}

	_, err := server.handleEntriesResource(context.Background(), readRequest(uriScheme+"entries"))

	assert.ErrorContains(t, err, "listing entries")
}
