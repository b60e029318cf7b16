package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/causallab/dagcheck/pkg/check"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

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
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// severityStyles maps issue severities to display styles.
var severityStyles = map[check.Severity]lipgloss.Style{
	check.SeverityCritical: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	check.SeverityHigh:     lipgloss.NewStyle().Foreground(colorRed),
	check.SeverityMedium:   lipgloss.NewStyle().Foreground(colorYellow),
	check.SeverityLow:      lipgloss.NewStyle().Foreground(colorGray),
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Report Display
// =============================================================================

// printReport prints a validation report: headline, issues, stats.
func printReport(rep *check.Report, cached bool) {
	name := rep.ScenarioID
	if name == "" {
		name = rep.Fingerprint[:12]
	}

	if rep.Passed {
		printSuccess("%s passed", StyleHighlight.Render(name))
	} else {
		printError("%s failed", StyleHighlight.Render(name))
	}

	for _, issue := range rep.Issues {
		printIssue(issue)
	}
	for _, rule := range rep.Indeterminate {
		printDetail("%s indeterminate (graph is cyclic)", rule)
	}

	printStats(rep.Stats.Variables, rep.Stats.Edges, cached)
}

// printIssue prints a single finding with severity coloring.
func printIssue(issue check.Issue) {
	style, ok := severityStyles[issue.Severity]
	if !ok {
		style = StyleDim
	}
	line := fmt.Sprintf("  %s %s %s",
		style.Render(strings.ToUpper(issue.Severity.String())),
		StyleDim.Render(issue.Rule),
		issue.Message)
	fmt.Println(line)
	if len(issue.Path) > 0 {
		printDetail("path: %s", strings.Join(issue.Path, " "+iconArrow+" "))
	}
}

// printStats prints graph statistics on a single line.
func printStats(variableCount, edgeCount int, cached bool) {
	var parts []string
	if variableCount > 0 {
		parts = append(parts, fmt.Sprintf("%d variables", variableCount))
	}
	if edgeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d edges", edgeCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
