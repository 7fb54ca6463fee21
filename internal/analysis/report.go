package analysis

import (
	"fmt"
	"strings"
	"time"

	"selene/internal/models"
)

// Report renders a result as a plain-text report suitable for terminal output
// or export.
func Report(result *models.AnalysisResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Selene Analysis Report: %s\n", result.AnalysisType)
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&sb, "Summary: %s\n\n", result.Summary)

	meta := result.Metadata
	sb.WriteString("Analysis Details:\n")
	fmt.Fprintf(&sb, "  Schematic: %s\n", meta.SchematicFile)
	fmt.Fprintf(&sb, "  Datasheet Available: %s\n", yesNo(meta.HasDatasheet))
	if meta.HasDatasheet {
		fmt.Fprintf(&sb, "  Component: %s\n", meta.DatasheetComponent)
	}
	fmt.Fprintf(&sb, "  Confidence: %s\n", meta.Confidence)
	fmt.Fprintf(&sb, "  Quality: %s\n", meta.Quality)
	if meta.AnalysisTime > 0 {
		fmt.Fprintf(&sb, "  Analysis Time: %.1fs\n", meta.AnalysisTime.Seconds())
	}
	sb.WriteString("\n")

	sb.WriteString("Analysis Results:\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if result.Content != "" {
		sb.WriteString(result.Content + "\n")
	} else {
		sb.WriteString("No analysis content available.\n")
	}

	if len(result.Findings) > 0 {
		sb.WriteString("\nDetailed Findings:\n")
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, f := range result.Findings {
			fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, f.Severity, f.Description)
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}

	if len(result.Issues) > 0 {
		sb.WriteString("\nIssues by Category:\n")
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		byCategory := make(map[models.IssueCategory][]models.Issue)
		var order []models.IssueCategory
		for _, issue := range result.Issues {
			if _, ok := byCategory[issue.Category]; !ok {
				order = append(order, issue.Category)
			}
			byCategory[issue.Category] = append(byCategory[issue.Category], issue)
		}
		for _, category := range order {
			fmt.Fprintf(&sb, "\n%s:\n", titleCase(string(category)))
			for _, issue := range byCategory[category] {
				fmt.Fprintf(&sb, "  [%s] %s: %s\n", issue.Severity, issue.Component, issue.Description)
			}
		}
	}

	sb.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	if !meta.Timestamp.IsZero() {
		fmt.Fprintf(&sb, "Generated: %s\n", meta.Timestamp.Format(time.RFC3339))
	}
	sb.WriteString("Generated by Selene - Schematic Review Tool\n")

	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
