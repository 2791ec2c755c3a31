package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "bare_object",
			raw:  `{"summary": "ok", "score": 42}`,
			want: map[string]any{"summary": "ok", "score": float64(42)},
		},
		{
			name: "fenced_with_language_tag",
			raw:  "```json\n{\"summary\": \"ok\", \"score\": 42}\n```",
			want: map[string]any{"summary": "ok", "score": float64(42)},
		},
		{
			name: "fenced_without_language_tag",
			raw:  "```\n{\"summary\": \"ok\"}\n```",
			want: map[string]any{"summary": "ok"},
		},
		{
			name: "fence_opened_but_never_closed",
			raw:  "```json\n{\"summary\": \"ok\"}",
			want: map[string]any{"summary": "ok"},
		},
		{
			name: "surrounding_whitespace",
			raw:  "   \n{\"summary\": \"ok\"}\n\n",
			want: map[string]any{"summary": "ok"},
		},
		{
			name: "multiline_object_inside_fence",
			raw:  "```json\n{\n  \"a\": 1,\n  \"b\": [1, 2]\n}\n```",
			want: map[string]any{"a": float64(1), "b": []any{float64(1), float64(2)}},
		},
		{
			name:    "prose_outside_fence",
			raw:     "Here is your JSON:\n{\"summary\": \"ok\"}",
			wantErr: true,
		},
		{
			name:    "truncated_object",
			raw:     `{"summary": "ok", "score":`,
			wantErr: true,
		},
		{
			name:    "empty_string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "top_level_array",
			raw:     `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var lerr *llmerrors.Error
				require.True(t, errors.As(err, &lerr))
				assert.Equal(t, llmerrors.KindMalformedResponse, lerr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Extraction is idempotent in effect: a fenced payload and its bare
// equivalent yield the same object.
func TestExtractJSON_FencedEqualsBare(t *testing.T) {
	bare := `{"profile_analysis": "solid", "mistakes": ["a", "b"]}`
	fenced := "```json\n" + bare + "\n```"

	fromBare, err := extractJSON(bare)
	require.NoError(t, err)
	fromFenced, err := extractJSON(fenced)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromFenced)
}

func TestExtractJSON_ErrorCarriesRawPrefix(t *testing.T) {
	long := "not json at all " + strings.Repeat("x", 5000)
	_, err := extractJSON(long)
	require.Error(t, err)
	// Detail must stay bounded even for a large offending payload.
	assert.Less(t, len(err.Error()), 1000)
}
