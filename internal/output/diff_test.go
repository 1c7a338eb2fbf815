package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiff(t *testing.T) {
	t.Run("equal inputs produce no diff", func(t *testing.T) {
		assert.Empty(t, UnifiedDiff("a", "b", "same\n", "same\n"))
	})

	t.Run("single line change", func(t *testing.T) {
		got := UnifiedDiff("README.md", "README.md (generated)", "a\nb\nc\n", "a\nB\nc\n")
		want := "--- README.md\n" +
			"+++ README.md (generated)\n" +
			"@@ -1,3 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+B\n" +
			" c\n"
		assert.Equal(t, want, got)
	})

	t.Run("distant changes produce separate hunks", func(t *testing.T) {
		var old, updated []string
		for i := 0; i < 20; i++ {
			old = append(old, "line")
			updated = append(updated, "line")
		}
		old[0], updated[0] = "first", "FIRST"
		old[19], updated[19] = "last", "LAST"

		got := UnifiedDiff("a", "b", strings.Join(old, "\n")+"\n", strings.Join(updated, "\n")+"\n")
		assert.Equal(t, 2, strings.Count(got, "@@ -"))
		assert.Contains(t, got, "@@ -1,4 +1,4 @@")
		assert.Contains(t, got, "@@ -17,4 +17,4 @@")
	})

	t.Run("new file", func(t *testing.T) {
		got := UnifiedDiff("a", "b", "", "x\ny\n")
		assert.Contains(t, got, "@@ -0,0 +1,2 @@\n+x\n+y\n")
	})

	t.Run("missing trailing newline", func(t *testing.T) {
		got := UnifiedDiff("a", "b", "x", "y\n")
		assert.Contains(t, got, "-x\n\\ No newline at end of file\n+y\n")
	})
}

func TestColorizeDiff(t *testing.T) {
	diff := UnifiedDiff("a", "b", "x\n", "y\n")
	assert.Equal(t, diff, ColorizeDiff(diff, NoColorStyles()))
	assert.Equal(t, "No changes detected.\n", ColorizeDiff("", NoColorStyles()))
}

func TestDiffSummary(t *testing.T) {
	diff := UnifiedDiff("a", "b", "a\nb\n", "a\nB\nC\n")
	assert.Equal(t, "2 lines added, 1 line removed", DiffSummary(diff))
	assert.Equal(t, "No changes", DiffSummary(""))
}
