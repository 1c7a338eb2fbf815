package readme

import (
	"strings"
)

// Tidy normalizes rendered output: runs of blank lines collapse to one,
// leading blank lines are dropped, trailing whitespace is stripped, and the
// result ends with exactly one newline. Two trailing spaces are kept as a
// Markdown hard line break. Fenced code blocks are copied verbatim.
func Tidy(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var (
		out   []string
		fence string
		blank bool
	)
	for _, line := range strings.Split(s, "\n") {
		if fence != "" {
			out = append(out, line)
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}
		if f := openingFence(line); f != "" {
			fence = f
			blank = false
			out = append(out, strings.TrimRight(line, " \t\r"))
			continue
		}

		line = trimTrailing(line)
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

// trimTrailing strips trailing whitespace from a line outside code, keeping
// a two-space hard line break.
func trimTrailing(line string) string {
	trimmed := strings.TrimRight(line, " \t\r")
	if trimmed == "" {
		return ""
	}
	if strings.HasSuffix(strings.TrimRight(line, "\r"), "  ") {
		return trimmed + "  "
	}
	return trimmed
}

// fenceIndent strips the up to three spaces of indentation a fence may have.
func fenceIndent(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	return trimmed, len(line)-len(trimmed) <= 3
}

// openingFence returns the fence marker (a run of three or more backticks or
// tildes) that opens a code block on line, or "".
func openingFence(line string) string {
	rest, ok := fenceIndent(line)
	if !ok || len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return ""
	}
	n := len(rest) - len(strings.TrimLeft(rest, rest[:1]))
	if n < 3 {
		return ""
	}
	if rest[0] == '`' && strings.Contains(rest[n:], "`") {
		return ""
	}
	return rest[:n]
}

// closesFence reports whether line closes a block opened with fence.
func closesFence(line, fence string) bool {
	rest, ok := fenceIndent(line)
	if !ok {
		return false
	}
	body := strings.TrimLeft(rest, fence[:1])
	return len(rest)-len(body) >= len(fence) && strings.TrimSpace(body) == ""
}
