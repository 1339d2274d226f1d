package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/visionboard/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	severityColors = map[string]lipgloss.Color{
		domain.SeverityCritical: danger,
		domain.SeverityHigh:     lipgloss.Color("#FB923C"), // orange
		domain.SeverityMedium:   warning,
		domain.SeverityLow:      lipgloss.Color("#A3E635"), // lime
		domain.SeverityInfo:     info,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	passTagStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRun renders an evaluation run: a summary box, one section per check
// and the remediation tasks.
func RenderRun(run *domain.EvaluationRun) string {
	var b strings.Builder

	// ── Header ──
	totals := run.Totals()
	title := headerStyle.Render("visionboard")
	subtitle := dimStyle.Render("Compliance Report")
	summary := fmt.Sprintf("%s  %s  %s",
		passTagStyle.Render(fmt.Sprintf("%d passed", totals[domain.StatusPassed])),
		errorTagStyle.Render(fmt.Sprintf("%d failed", totals[domain.StatusFailed])),
		warnTagStyle.Render(fmt.Sprintf("%d unknown", totals[domain.StatusUnknown])),
	)
	header := title + "\n" + subtitle + "\n\n" + summary
	if run.DatasetRevision != "" {
		header += "\n" + faintStyle.Render("dataset @ "+shortHash(run.DatasetRevision))
	}
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	if len(run.Reports) == 0 {
		b.WriteString("  " + dimStyle.Render("No checks evaluated.") + "\n")
		return b.String()
	}

	// ── Checks ──
	for i, rep := range run.Reports {
		renderReport(&b, rep)
		if i < len(run.Reports)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Tasks ──
	var tasks []domain.Task
	for _, rep := range run.Reports {
		tasks = append(tasks, rep.Analysis.Tasks...)
	}
	renderTasks(&b, tasks)

	b.WriteString("\n")
	return b.String()
}

func renderReport(b *strings.Builder, rep domain.CheckReport) {
	counts := rep.Analysis.CountByStatus()
	total := len(rep.Analysis.Results)

	passedPct := 0
	if total > 0 {
		passedPct = counts[domain.StatusPassed] * 100 / total
	}

	name := catNameStyle.Render(padRight(DisplayName(rep.Check.Code), 28))
	bar := coloredBar(passedPct, 20)
	ratio := dimStyle.Render(fmt.Sprintf("%d/%d", counts[domain.StatusPassed], total))
	fmt.Fprintf(b, "  %s %s  %s  %s\n", name, bar, ratio, severityTag(rep.Check.Severity()))

	for _, r := range rep.Analysis.Results {
		renderResult(b, r)
	}
}

func renderResult(b *strings.Builder, r domain.ComplianceResult) {
	project := padRight(fmt.Sprintf("project #%d", r.ProjectID), 16)
	fmt.Fprintf(b, "    %s %s %s\n", statusIcon(r.Status), project, dimStyle.Render(r.Rationale))
}

func renderTasks(b *strings.Builder, tasks []domain.Task) {
	if len(tasks) == 0 {
		b.WriteString("  " + passStyle.Render("Nothing to remediate.") + "\n")
		return
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d open", len(tasks))))
	b.WriteString("\n\n")

	for _, t := range tasks {
		fmt.Fprintf(b, "    %s %s %s\n",
			severityTag(t.Severity),
			faintStyle.Render(fmt.Sprintf("#%d", t.ProjectID)),
			t.Title,
		)
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(t.Description))
	}
}

func statusIcon(s domain.Status) string {
	switch s {
	case domain.StatusPassed:
		return passStyle.Render("●")
	case domain.StatusFailed:
		return failStyle.Render("●")
	default:
		return warnStyle.Render("○")
	}
}

func severityTag(severity string) string {
	color, ok := severityColors[severity]
	if !ok {
		color = fg
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(padRight(severity, 8))
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	color := pctColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func pctColor(pct int) lipgloss.Color {
	switch {
	case pct >= 80:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
