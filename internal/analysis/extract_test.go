package analysis

import (
	"strings"
	"testing"

	"selene/internal/models"
)

func TestExtractFindings(t *testing.T) {
	text := "Issues: The decoupling capacitor C3 is missing from the power rail.\n\n" +
		"Verified: All op-amp connections on U1 match the datasheet pinout."

	findings := ExtractFindings(text)
	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2: %+v", len(findings), findings)
	}

	issue := findings[0]
	if issue.Kind != models.FindingIssue {
		t.Errorf("first finding kind = %q, want issue", issue.Kind)
	}
	if issue.Severity != models.SeverityCritical {
		t.Errorf("severity = %q, want CRITICAL for a missing part", issue.Severity)
	}
	if !strings.Contains(issue.Description, "C3") {
		t.Errorf("description = %q", issue.Description)
	}

	verification := findings[1]
	if verification.Kind != models.FindingVerification {
		t.Errorf("second finding kind = %q, want verification", verification.Kind)
	}
	if verification.Severity != models.SeverityInfo {
		t.Errorf("verification severity = %q, want INFO", verification.Severity)
	}
}

func TestExtractionEndToEnd(t *testing.T) {
	text := "Issues: R1 is missing a pull-up resistor. Recommend adding a 10k resistor. Verified: C1 value matches datasheet."

	findings := ExtractFindings(text)
	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2: %+v", len(findings), findings)
	}
	if findings[0].Kind != models.FindingIssue || findings[0].Severity != models.SeverityCritical {
		t.Errorf("issue finding = %+v", findings[0])
	}
	if findings[1].Kind != models.FindingVerification || findings[1].Severity != models.SeverityInfo {
		t.Errorf("verification finding = %+v", findings[1])
	}

	recs := ExtractRecommendations(text)
	if len(recs) != 1 || !strings.Contains(recs[0], "adding a 10k resistor") {
		t.Errorf("recommendations = %v", recs)
	}

	issues := IdentifyIssues(text)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1: %+v", len(issues), issues)
	}
	if issues[0].Component != "R1" {
		t.Errorf("component = %q, want R1", issues[0].Component)
	}
	// "resistor" puts the sentence in the components bucket; no connectivity
	// keyword is present.
	if issues[0].Category != models.IssueComponents {
		t.Errorf("category = %q, want components", issues[0].Category)
	}
}

func TestExtractFindingsDropsShortBodies(t *testing.T) {
	findings := ExtractFindings("Issues: none.\n\nVerified: ok.")
	if len(findings) != 0 {
		t.Errorf("short bodies should be dropped, got %+v", findings)
	}
}

func TestExtractFindingsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString("Problem: the trace routing near the oscillator is questionable here.\n\n")
	}
	findings := ExtractFindings(sb.String())
	if len(findings) != 10 {
		t.Errorf("findings = %d, want capped at 10", len(findings))
	}
}

func TestClassifySeverityFirstBucketWins(t *testing.T) {
	// "warning" and "mismatch" are high, "minor" is low; high wins.
	sev, ok := classifySeverity("This is a minor warning about a mismatch.")
	if !ok || sev != models.SeverityHigh {
		t.Errorf("severity = %q (%v), want HIGH", sev, ok)
	}

	sev, ok = classifySeverity("The footprint is wrong and also suboptimal.")
	if !ok || sev != models.SeverityCritical {
		t.Errorf("severity = %q (%v), want CRITICAL", sev, ok)
	}

	if _, ok := classifySeverity("everything looks fine here"); ok {
		t.Error("neutral text should not classify")
	}
}

func TestExtractRecommendationsDedup(t *testing.T) {
	text := "You should add a decoupling capacitor near U1.\n" +
		"Consider add a decoupling capacitor near U1.\n"
	recs := ExtractRecommendations(text)
	if len(recs) != 1 {
		t.Fatalf("recs = %d, want 1 after dedup: %v", len(recs), recs)
	}
	if recs[0] != "add a decoupling capacitor near U1." {
		t.Errorf("rec = %q", recs[0])
	}
}

func TestIdentifyIssues(t *testing.T) {
	text := "R1 is missing a pull-up resistor. The layout looks reasonable otherwise."
	issues := IdentifyIssues(text)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1: %+v", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != models.SeverityCritical {
		t.Errorf("severity = %q, want CRITICAL", issue.Severity)
	}
	if issue.Component != "R1" {
		t.Errorf("component = %q, want R1", issue.Component)
	}
	if issue.Category != models.IssueComponents {
		t.Errorf("category = %q, want components", issue.Category)
	}
}

func TestIdentifyIssuesCategoryPriority(t *testing.T) {
	tests := []struct {
		sentence string
		want     models.IssueCategory
	}{
		// "pin" outranks "voltage" even though both appear.
		{"Pin 4 has the wrong voltage level applied", models.IssueConnectivity},
		{"The supply voltage rating is incorrect for this part", models.IssuePower},
		{"A bulk capacitor value seems wrong here", models.IssueComponents},
		{"The rating listed is incorrect for sure", models.IssueSpecifications},
		{"Something. It is simply broken somehow", models.IssueGeneral},
	}
	for _, tt := range tests {
		issues := IdentifyIssues(tt.sentence)
		if len(issues) != 1 {
			t.Fatalf("issues for %q = %d, want 1", tt.sentence, len(issues))
		}
		if issues[0].Category != tt.want {
			t.Errorf("category for %q = %q, want %q", tt.sentence, issues[0].Category, tt.want)
		}
	}
}

func TestIdentifyIssuesCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString("The oscillator section is clearly broken somehow. ")
	}
	issues := IdentifyIssues(sb.String())
	if len(issues) != 8 {
		t.Errorf("issues = %d, want capped at 8", len(issues))
	}
}

func TestIdentifyIssuesSkipsNeutralSentences(t *testing.T) {
	issues := IdentifyIssues("The schematic shows a standard buck converter topology.")
	if len(issues) != 0 {
		t.Errorf("neutral text should produce no issues: %+v", issues)
	}
}

func TestExtractComponentRef(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"capacitor C12 is undersized", "C12"},
		{"check pin 7 on the regulator", "pin 7"},
		{"the board has a broken trace", "General"},
	}
	for _, tt := range tests {
		if got := extractComponentRef(tt.text); got != tt.want {
			t.Errorf("extractComponentRef(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
