package exporter

import (
	"testing"

	"libwebdoc/internal/exporter/html"
	"libwebdoc/internal/exporter/openapi"
	"libwebdoc/internal/exporter/word"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	cases := map[string]string{
		"markdown":      "markdown",
		" MD ":          "markdown",
		"xlsx":          "excel",
		"docx":          "word",
		"swagger":       "openapi",
		"yaml":          "openapi-yaml",
		"openapi-yaml":  "openapi-yaml",
		"pdf":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Kind(in), in)
	}
}

func TestGetExporters_DedupesAliases(t *testing.T) {
	exps := GetExporters([]string{"excel", "xlsx", "md", "markdown", "html", "word", "json", "yaml", "unknown"})
	require.Len(t, exps, 6)

	assert.IsType(t, &ExcelExporter{}, exps[0])
	assert.IsType(t, &MarkdownExporter{}, exps[1])
	assert.IsType(t, &html.HTMLExporter{}, exps[2])
	assert.IsType(t, &word.WordExporter{}, exps[3])
	assert.IsType(t, &openapi.OpenAPIExporter{}, exps[4])
	assert.IsType(t, &openapi.OpenAPIExporter{}, exps[5])
}

func TestGetExporters_Empty(t *testing.T) {
	assert.Empty(t, GetExporters(nil))
}
