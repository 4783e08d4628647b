package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msyaifulbhr/hscode/internal/common"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain json untouched",
			content: `{"a": 1}`,
			want:    `{"a": 1}`,
		},
		{
			name:    "json fence stripped",
			content: "```json\n{\"a\": 1}\n```",
			want:    `{"a": 1}`,
		},
		{
			name:    "bare fence stripped",
			content: "```\n{\"a\": 1}\n```",
			want:    `{"a": 1}`,
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  \n{\"a\": 1}\n  ",
			want:    `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}

func TestParseContractOutput(t *testing.T) {
	t.Run("valid output", func(t *testing.T) {
		content := `{"analysisText": "Live cattle classify under heading 0102.", "codeAndDescription": "010229 - Live cattle"}`

		output, err := parseContractOutput(content)
		require.NoError(t, err)
		assert.Equal(t, "Live cattle classify under heading 0102.", output.AnalysisText)
		assert.Equal(t, "010229 - Live cattle", output.CodeAndDescription)
	})

	t.Run("markdown wrapped output", func(t *testing.T) {
		content := "```json\n{\"analysisText\": \"ok\", \"codeAndDescription\": \"847130 - Portable computers\"}\n```"

		output, err := parseContractOutput(content)
		require.NoError(t, err)
		assert.Equal(t, "847130 - Portable computers", output.CodeAndDescription)
	})

	t.Run("sentinel output", func(t *testing.T) {
		content := `{"analysisText": "Nothing fits.", "codeAndDescription": "000000 - Unclassified"}`

		output, err := parseContractOutput(content)
		require.NoError(t, err)
		assert.Equal(t, "000000 - Unclassified", output.CodeAndDescription)
	})

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "the code is 010229"},
		{name: "missing analysis", content: `{"codeAndDescription": "010229 - Live cattle"}`},
		{name: "missing pairing", content: `{"analysisText": "ok"}`},
		{name: "bare code", content: `{"analysisText": "ok", "codeAndDescription": "010229"}`},
		{name: "short code", content: `{"analysisText": "ok", "codeAndDescription": "0102 - Live cattle"}`},
		{name: "non-numeric code", content: `{"analysisText": "ok", "codeAndDescription": "ABCDEF - Live cattle"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseContractOutput(tt.content)
			require.ErrorIs(t, err, common.ErrInvalidInferenceOutput)
		})
	}
}
