package analysis

import (
	"regexp"
	"strings"

	"selene/internal/models"
)

// Caps on extracted list sizes, first-found order.
const (
	maxFindings        = 10
	maxRecommendations = 8
	maxIssues          = 8
)

// Lead-in patterns marking statements in the model's free text. The text body
// runs from the end of the lead-in to the next blank line or capitalized-line
// boundary.
var (
	issueLeadRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bissues?\s*:?\s*`),
		regexp.MustCompile(`(?i)\bproblems?\s*:?\s*`),
		regexp.MustCompile(`(?i)\bconcerns?\s*:?\s*`),
		regexp.MustCompile(`(?i)\bwarnings?\s*:?\s*`),
		regexp.MustCompile(`(?i)\berrors?\s*:?\s*`),
	}
	verificationLeadRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bverified\s*:?\s*`),
		regexp.MustCompile(`(?i)\bcorrect\s*:?\s*`),
		regexp.MustCompile(`(?i)\bgood\s*:?\s*`),
	}
	recommendationLeadRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brecommends?\s*:?\s*`),
		regexp.MustCompile(`(?i)\bsuggests?\s*:?\s*`),
		regexp.MustCompile(`(?i)\bshould\s+`),
		regexp.MustCompile(`(?i)\bconsider\s+`),
	}
)

// spanFrom returns the trimmed text from start to the next blank line or a
// newline followed by an uppercase letter, whichever comes first.
func spanFrom(text string, start int) string {
	rest := text[start:]
	end := len(rest)
	if i := strings.Index(rest, "\n\n"); i >= 0 && i < end {
		end = i
	}
	for i := 0; i < end-1; i++ {
		if rest[i] == '\n' && rest[i+1] >= 'A' && rest[i+1] <= 'Z' {
			end = i
			break
		}
	}
	return strings.TrimSpace(rest[:end])
}

// severityBuckets are evaluated in fixed order; the first bucket containing
// any keyword of the text wins, so no statement gets two severities.
var severityBuckets = []struct {
	severity models.Severity
	keywords []string
}{
	{models.SeverityCritical, []string{"missing", "incorrect", "wrong", "error", "fault", "broken", "failed"}},
	{models.SeverityHigh, []string{"warning", "concern", "problem", "issue", "mismatch", "violation"}},
	{models.SeverityMedium, []string{"suboptimal", "improvement", "better", "alternative", "consider"}},
	{models.SeverityLow, []string{"minor", "cosmetic", "style", "preference", "optional"}},
}

// classifySeverity returns the first matching severity bucket for text.
// The second return is false when no bucket matches.
func classifySeverity(text string) (models.Severity, bool) {
	lower := strings.ToLower(text)
	for _, bucket := range severityBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.severity, true
			}
		}
	}
	return "", false
}

// categoryBuckets are evaluated in fixed priority order.
var categoryBuckets = []struct {
	category models.IssueCategory
	keywords []string
}{
	{models.IssueConnectivity, []string{"pin", "connection", "wire", "trace"}},
	{models.IssuePower, []string{"voltage", "power", "supply", "vcc", "gnd"}},
	{models.IssueComponents, []string{"capacitor", "resistor", "inductor", "component"}},
	{models.IssueSpecifications, []string{"value", "rating", "specification"}},
}

// categorizeIssue assigns the first matching functional category, defaulting
// to general.
func categorizeIssue(text string) models.IssueCategory {
	lower := strings.ToLower(text)
	for _, bucket := range categoryBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.category
			}
		}
	}
	return models.IssueGeneral
}

// componentRefRe matches a component designator (R1, U3, ...) or a pin
// reference.
var componentRefRe = regexp.MustCompile(`(?i)(?:[RCLUQDJXY]\d+|pin\s*\d+)`)

// extractComponentRef returns the first designator in text, or "General".
func extractComponentRef(text string) string {
	if m := componentRefRe.FindString(text); m != "" {
		return m
	}
	return "General"
}

// ExtractFindings pulls structured findings from the raw response: statements
// behind issue-family lead-ins (severity classified), then statements behind
// verification lead-ins (always INFO). Bodies of 10 characters or fewer are
// dropped. Capped at 10 findings in first-found order.
func ExtractFindings(text string) []models.Finding {
	var findings []models.Finding

	for _, re := range issueLeadRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			body := spanFrom(text, loc[1])
			if len(body) <= 10 {
				continue
			}
			severity, ok := classifySeverity(body)
			if !ok {
				severity = models.SeverityInfo
			}
			findings = append(findings, models.Finding{
				Description: body,
				Severity:    severity,
				Kind:        models.FindingIssue,
			})
		}
	}

	for _, re := range verificationLeadRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			body := spanFrom(text, loc[1])
			if len(body) <= 10 {
				continue
			}
			findings = append(findings, models.Finding{
				Description: body,
				Severity:    models.SeverityInfo,
				Kind:        models.FindingVerification,
			})
		}
	}

	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	return findings
}

// ExtractRecommendations pulls recommendation statements, deduplicated
// case-insensitively, capped at 8.
func ExtractRecommendations(text string) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, re := range recommendationLeadRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			body := spanFrom(text, loc[1])
			if len(body) <= 10 {
				continue
			}
			key := strings.ToLower(body)
			if seen[key] {
				continue
			}
			seen[key] = true
			recommendations = append(recommendations, body)
		}
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// IdentifyIssues splits the response into sentences and classifies each one
// that carries a severity keyword, tagging it with a component reference and
// a functional category. Sentences shorter than 10 characters are skipped.
// Capped at 8 issues.
func IdentifyIssues(text string) []models.Issue {
	var issues []models.Issue

	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 10 {
			continue
		}
		severity, ok := classifySeverity(sentence)
		if !ok {
			continue
		}
		issues = append(issues, models.Issue{
			Description: sentence,
			Severity:    severity,
			Component:   extractComponentRef(sentence),
			Category:    categorizeIssue(sentence),
		})
		if len(issues) == maxIssues {
			break
		}
	}
	return issues
}
