package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: paths, template names, keys.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" file status and added diff lines.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "updated" file status and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed diff lines.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, template names, keys).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (scanning, rendering, writing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (stage prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by renderers that must also work without
// color, such as diffs written to a pipe.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the colored style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Noun:    StyleNoun,
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// NoColorStyles returns a style set that renders text unchanged.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Bold:    plain,
		Muted:   plain,
		Noun:    plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
	}
}

// StylesFor returns colored styles on a terminal and plain styles otherwise.
func StylesFor(tty bool) *Styles {
	if tty {
		return GetStyles()
	}
	return NoColorStyles()
}

// File status constants.
const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusValid     = "valid"
)

// statusStyle returns the lipgloss style for a given file status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusUpdated:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width for the path column before the
// status suffix, so status words align.
const minPathColumnWidth = 40

// FormatFileLine renders a file path with a right-aligned, color-coded
// status suffix.
func FormatFileLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("f:") + StyleNoun.Render(path) +
		strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth aligns detail text in vet output.
const vetLabelWidth = 28

// FormatVetCheck renders a passed check line with an optional aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}
