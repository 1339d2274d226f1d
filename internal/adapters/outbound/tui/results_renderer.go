package tui

import (
	"fmt"
	"strings"

	"github.com/openkraft/visionboard/internal/domain"
)

// RenderStoredResults formats persisted results and the run log.
func RenderStoredResults(stored *domain.StoredResults) string {
	if stored == nil || len(stored.Results) == 0 {
		return "  " + dimStyle.Render("No stored results found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Stored Results") + "  ")
	b.WriteString(dimStyle.Render("updated " + stored.UpdatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, r := range stored.Results {
		fmt.Fprintf(&b, "    %s %s %s %s\n",
			statusIcon(r.Status),
			faintStyle.Render(padRight(fmt.Sprintf("check #%d", r.ComplianceCheckID), 10)),
			padRight(fmt.Sprintf("project #%d", r.ProjectID), 14),
			dimStyle.Render(r.Rationale),
		)
	}

	b.WriteString("\n")
	renderRunLog(&b, stored.Runs)
	return b.String()
}

func renderRunLog(b *strings.Builder, runs []domain.RunEntry) {
	if len(runs) == 0 {
		return
	}

	b.WriteString("  " + titleStyle.Render("Run Log") + "\n\n")
	for i, e := range runs {
		rev := shortHash(e.DatasetRevision)
		if rev == "" {
			rev = "·······"
		}
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(rev),
			passStyle.Render(fmt.Sprintf("%d passed", e.Passed)),
			failStyle.Render(fmt.Sprintf("%d failed", e.Failed)),
			skipStyle.Render(fmt.Sprintf("%d unknown", e.Unknown)),
		)

		if i > 0 {
			diff := e.Failed - runs[i-1].Failed
			if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
}
