package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type lineOp struct {
	kind    diffmatchpatch.Operation
	text    string
	oldLine int
	newLine int
}

// UnifiedDiff returns a line-based unified diff from oldText to newText, or
// "" when they are equal.
func UnifiedDiff(oldName, newName, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	ops := diffLines(oldText, newText)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	for _, h := range hunks(ops) {
		writeHunk(&sb, ops[h[0]:h[1]])
	}
	return sb.String()
}

func diffLines(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			op := lineOp{kind: d.Type, text: text, oldLine: oldLine, newLine: newLine}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				oldLine++
			case diffmatchpatch.DiffInsert:
				newLine++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// hunks returns [start, end) ranges of ops covering each change plus context.
// Overlapping or adjacent ranges are merged.
func hunks(ops []lineOp) [][2]int {
	var out [][2]int
	for i, op := range ops {
		if op.kind == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-diffContext, 0)
		end := min(i+diffContext+1, len(ops))
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(sb *strings.Builder, ops []lineOp) {
	var oldCount, newCount int
	for _, op := range ops {
		if op.kind != diffmatchpatch.DiffInsert {
			oldCount++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			newCount++
		}
	}

	oldStart, newStart := ops[0].oldLine, ops[0].newLine
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)

	for _, op := range ops {
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			sb.WriteByte(' ')
		case diffmatchpatch.DiffDelete:
			sb.WriteByte('-')
		case diffmatchpatch.DiffInsert:
			sb.WriteByte('+')
		}
		sb.WriteString(op.text)
		if !strings.HasSuffix(op.text, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

// ColorizeDiff styles a unified diff for terminal display.
func ColorizeDiff(diff string, styles *Styles) string {
	if diff == "" {
		return "No changes detected.\n"
	}

	var sb strings.Builder
	for _, line := range splitLines(diff) {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = styles.Bold.Render(body)
		case strings.HasPrefix(body, "@@"):
			body = styles.Noun.Render(body)
		case strings.HasPrefix(body, "+"):
			body = styles.Success.Render(body)
		case strings.HasPrefix(body, "-"):
			body = styles.Error.Render(body)
		}
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}

// DiffSummary counts added and removed lines in a unified diff.
func DiffSummary(diff string) string {
	var added, removed int
	for _, line := range splitLines(diff) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	if added == 0 && removed == 0 {
		return "No changes"
	}
	return fmt.Sprintf("%s, %s", pluralize(added, "line added", "lines added"), pluralize(removed, "line removed", "lines removed"))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
