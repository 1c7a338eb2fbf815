package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatYAML, true},
		{FormatJSON, true},
		{FormatTable, true},
		{OutputFormat("dir"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"json", FormatJSON, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "yaml, json, table")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	v := map[string]any{
		"repo_name": "widgets",
		"topics":    []string{"cli", "go"},
		"badge":     "<b>",
	}

	var yamlBuf bytes.Buffer
	require.NoError(t, Encode(&yamlBuf, FormatYAML, v))
	assert.Contains(t, yamlBuf.String(), "repo_name: widgets\ntopics:\n- cli\n- go\n")

	var jsonBuf bytes.Buffer
	require.NoError(t, Encode(&jsonBuf, FormatJSON, v))
	assert.Contains(t, jsonBuf.String(), `"badge": "<b>"`)
	assert.Contains(t, jsonBuf.String(), `"repo_name": "widgets"`)

	require.Error(t, Encode(&jsonBuf, FormatTable, v))
}
