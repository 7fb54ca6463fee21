package models

import (
	"fmt"
	"strings"
)

// Analysis categories. The set is fixed; new categories require a matching
// prompt template.
const (
	ComponentVerification = "Component Verification"
	PinConfigurationCheck = "Pin Configuration Check"
	PowerSupplyAnalysis   = "Power Supply Analysis"
	DesignCompliance      = "Design Compliance"
	MissingComponents     = "Missing Components"
	CustomQuery           = "Custom Query"
)

// Categories returns the recognized analysis categories in display order.
func Categories() []string {
	return []string{
		ComponentVerification,
		PinConfigurationCheck,
		PowerSupplyAnalysis,
		DesignCompliance,
		MissingComponents,
		CustomQuery,
	}
}

// ValidCategory reports whether category belongs to the recognized set.
func ValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// AnalysisRequest holds the inputs to one analysis run.
type AnalysisRequest struct {
	SchematicPath string           `json:"schematic_path"`
	AnalysisType  string           `json:"analysis_type"`
	CustomQuery   string           `json:"custom_query,omitempty"`
	DatasheetPath string           `json:"datasheet_path,omitempty"`
	Datasheet     *DatasheetRecord `json:"datasheet,omitempty"`
}

// Validate checks the request invariants: a schematic path is present, the
// category belongs to the recognized set, and a custom query is non-empty when
// the category is Custom Query. An empty custom query is rejected rather than
// replaced with a placeholder.
func (r *AnalysisRequest) Validate() error {
	if r.SchematicPath == "" {
		return fmt.Errorf("schematic path is required")
	}
	if !ValidCategory(r.AnalysisType) {
		return fmt.Errorf("invalid analysis type: %q", r.AnalysisType)
	}
	if r.AnalysisType == CustomQuery && strings.TrimSpace(r.CustomQuery) == "" {
		return fmt.Errorf("custom query cannot be empty")
	}
	return nil
}
