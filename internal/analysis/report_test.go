package analysis

import (
	"strings"
	"testing"
	"time"

	"selene/internal/models"
)

func TestReport(t *testing.T) {
	result := &models.AnalysisResult{
		AnalysisType: models.PowerSupplyAnalysis,
		Summary:      "Found 2 potential issues. 1 critical.",
		Content:      "analysis body",
		Findings: []models.Finding{
			{Description: "C3 is missing", Severity: models.SeverityCritical, Kind: models.FindingIssue},
		},
		Recommendations: []string{"add a bulk capacitor"},
		Issues: []models.Issue{
			{Description: "C3 is missing", Severity: models.SeverityCritical, Component: "C3", Category: models.IssueComponents},
			{Description: "rail voltage mismatch", Severity: models.SeverityHigh, Component: "General", Category: models.IssuePower},
		},
		Metadata: models.Metadata{
			SchematicFile:      "board.png",
			HasDatasheet:       true,
			DatasheetComponent: "LM358",
			Confidence:         "High",
			Quality:            "Good",
			AnalysisTime:       3 * time.Second,
			Timestamp:          time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	report := Report(result)
	for _, want := range []string{
		"Selene Analysis Report: Power Supply Analysis",
		"Summary: Found 2 potential issues. 1 critical.",
		"Schematic: board.png",
		"Datasheet Available: Yes",
		"Component: LM358",
		"Confidence: High",
		"Analysis Time: 3.0s",
		"analysis body",
		"1. [CRITICAL] C3 is missing",
		"1. add a bulk capacitor",
		"Components:",
		"Power:",
		"[HIGH] General: rail voltage mismatch",
		"Generated: 2026-05-01T12:00:00Z",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestReportMinimal(t *testing.T) {
	report := Report(&models.AnalysisResult{AnalysisType: models.CustomQuery})
	if !strings.Contains(report, "No analysis content available.") {
		t.Error("empty content placeholder missing")
	}
	if !strings.Contains(report, "Datasheet Available: No") {
		t.Error("datasheet line missing")
	}
	if strings.Contains(report, "Generated: ") {
		t.Error("zero timestamp should omit the generated line")
	}
}
