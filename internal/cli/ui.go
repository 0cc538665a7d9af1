package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/libra/pkg/registry"
	"github.com/matzehuels/libra/pkg/search"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Registry badge colors, roughly matching each registry's branding.
var sourceColors = map[registry.Source]lipgloss.Color{
	registry.SourceNPM:    lipgloss.Color("160"),
	registry.SourceJSR:    lipgloss.Color("220"),
	registry.SourceCrates: lipgloss.Color("172"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
)

// descriptionWidth truncates descriptions in result tables.
const descriptionWidth = 48

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}

// =============================================================================
// Results
// =============================================================================

// renderBadge renders a registry label in its registry's color.
func renderBadge(p registry.Package) string {
	label := string(p.Source)
	if reg, ok := registry.Lookup(label); ok {
		label = reg.Label
	}
	return lipgloss.NewStyle().Bold(true).Foreground(sourceColors[p.Source]).Render(label)
}

// resultsTable renders packages as a bordered table.
func resultsTable(pkgs []registry.Package) string {
	rows := make([][]string, 0, len(pkgs))
	for _, p := range pkgs {
		rows = append(rows, []string{renderBadge(p), p.Name, p.Version, truncate(p.Description, descriptionWidth), p.URL})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Registry", "Name", "Version", "Description", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 4:
				return StyleDim.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})
	return t.Render()
}

// printCounts prints the per-registry hit summary on a single line.
func printCounts(w io.Writer, c search.Counts) {
	parts := []string{
		fmt.Sprintf("npm %d", c.NPM),
		fmt.Sprintf("JSR %d", c.JSR),
		fmt.Sprintf("crates.io %d", c.Crates),
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printPackage prints one package as key/value lines.
func printPackage(w io.Writer, p registry.Package) {
	printKeyValue(w, "Registry", renderBadge(p))
	printKeyValue(w, "Name", p.Name)
	if p.Version != "" {
		printKeyValue(w, "Version", p.Version)
	}
	if p.Description != "" {
		printKeyValue(w, "Description", p.Description)
	}
	if p.Author != "" {
		printKeyValue(w, "Author", p.Author)
	}
	printKeyValue(w, "URL", StyleLink.Render(p.URL))
	if p.GitHub != "" {
		printKeyValue(w, "GitHub", StyleLink.Render(p.GitHub))
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
