package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("KEY", "VALUE").
		Row("repo_name", "widgets").
		Row("license", "MIT")

	assert.Equal(t, 2, tbl.Len())
	out := stripAnsi(tbl.String())
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "widgets")
	assert.Contains(t, out, "MIT")
}

func TestRenderKeyValueTable(t *testing.T) {
	out := stripAnsi(RenderKeyValueTable([]KeyValue{
		{Key: "language", Value: "Go"},
		{Key: "stars", Value: "42"},
	}))
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "language")
	assert.Contains(t, out, "42")
}
