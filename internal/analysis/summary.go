package analysis

import (
	"fmt"
	"strings"

	"selene/internal/models"
)

// Summarize builds a short sentence reporting issue counts by severity and
// the number of positively verified findings.
func Summarize(findings []models.Finding, issues []models.Issue) string {
	counts := make(map[models.Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	var parts []string
	if len(issues) > 0 {
		parts = append(parts, fmt.Sprintf("Found %d potential issues", len(issues)))
		if n := counts[models.SeverityCritical]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d critical", n))
		}
		if n := counts[models.SeverityHigh]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d high priority", n))
		}
	} else {
		parts = append(parts, "No significant issues identified")
	}

	verified := 0
	for _, f := range findings {
		if f.Kind == models.FindingVerification {
			verified++
		}
	}
	if verified > 0 {
		parts = append(parts, fmt.Sprintf("%d items verified as correct", verified))
	}

	return strings.Join(parts, ". ") + "."
}

// FormatContent renders the display text: structured findings and
// recommendations when any were extracted, otherwise the raw response.
func FormatContent(raw string, findings []models.Finding, recommendations []string) string {
	if len(findings) == 0 && len(recommendations) == 0 {
		return raw
	}

	var sb strings.Builder
	if len(findings) > 0 {
		sb.WriteString("## Key Findings\n\n")
		for i, f := range findings {
			fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, f.Severity, f.Description)
		}
	}
	if len(recommendations) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## Recommendations\n\n")
		for i, rec := range recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}
	return sb.String()
}
