// Package models defines core data structures for analysis requests, datasheet
// records, and analysis results.
package models

import "time"

// Severity is the ordered severity of a finding or issue.
// Order: CRITICAL > HIGH > MEDIUM > LOW > INFO.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Rank returns the severity rank, highest first (CRITICAL=0). Unknown
// severities rank below INFO.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	}
	return 5
}

// FindingKind distinguishes extracted issues from positive verifications.
type FindingKind string

const (
	FindingIssue        FindingKind = "issue"
	FindingVerification FindingKind = "verification"
)

// Finding is one statement extracted from the model response.
type Finding struct {
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
	Kind        FindingKind `json:"kind"`
}

// IssueCategory is the functional category assigned to an issue.
type IssueCategory string

const (
	IssueConnectivity   IssueCategory = "connectivity"
	IssuePower          IssueCategory = "power"
	IssueComponents     IssueCategory = "components"
	IssueSpecifications IssueCategory = "specifications"
	IssueGeneral        IssueCategory = "general"
	// IssueError marks the synthetic issue attached to a failed analysis.
	IssueError IssueCategory = "error"
)

// Issue is a finding tagged with a component reference and a category.
// Component is a parsed designator (R1, U3, "pin 4") or the literal "General".
type Issue struct {
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
	Component   string        `json:"component"`
	Category    IssueCategory `json:"category"`
}

// Metadata carries per-analysis bookkeeping attached to a result.
type Metadata struct {
	ID                 string        `json:"id"`
	SchematicFile      string        `json:"schematic_file"`
	HasDatasheet       bool          `json:"has_datasheet"`
	DatasheetComponent string        `json:"datasheet_component"`
	Confidence         string        `json:"confidence"`
	Quality            string        `json:"analysis_quality"`
	AnalysisTime       time.Duration `json:"analysis_time"`
	Timestamp          time.Time     `json:"timestamp"`
	Error              bool          `json:"error,omitempty"`
	ErrorMessage       string        `json:"error_message,omitempty"`
}

// AnalysisResult is the caller-visible output of one analysis run.
// Analyze always returns a well-formed result; failures are reported through
// Metadata.Error rather than a returned error.
type AnalysisResult struct {
	AnalysisType    string    `json:"analysis_type"`
	Summary         string    `json:"summary"`
	Content         string    `json:"content"`
	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`
	Issues          []Issue   `json:"issues"`
	RawResponse     string    `json:"raw_response"`
	Metadata        Metadata  `json:"metadata"`
}
