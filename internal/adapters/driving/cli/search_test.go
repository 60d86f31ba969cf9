package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

func captureCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	return cmd, buf
}

func TestOutputSearchText(t *testing.T) {
	cmd, buf := captureCmd()

	result := &domain.QueryResult{
		Query: "caching",
		Results: []domain.QueryHit{
			{Content: "Cache invalidation is hard.", Source: "patterns.pdf", Page: 3, Relevance: 0.87},
		},
		Total: 1,
	}

	require.NoError(t, outputSearchText(cmd, result))

	out := buf.String()
	assert.Contains(t, out, "1 results")
	assert.Contains(t, out, "patterns.pdf (page 3")
	assert.Contains(t, out, "Cache invalidation is hard.")
}

func TestOutputSearchText_Empty(t *testing.T) {
	cmd, buf := captureCmd()

	require.NoError(t, outputSearchText(cmd, &domain.QueryResult{Query: "x", Results: []domain.QueryHit{}}))
	assert.Contains(t, buf.String(), "No results found.")
}

func TestOutputSearchJSON(t *testing.T) {
	cmd, buf := captureCmd()

	result := &domain.QueryResult{
		Query: "caching",
		Results: []domain.QueryHit{
			{Content: "c", Source: "s.md", Page: 1, Relevance: 0.5},
		},
		Total: 1,
	}

	require.NoError(t, outputSearchJSON(cmd, result))

	var decoded domain.QueryResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *result, decoded)
}
