package models

// UnknownComponent is the sentinel component name used when a datasheet yields
// no identifiable part number. A record carrying it is treated as "no usable
// datasheet" for context building and confidence scoring.
const UnknownComponent = "Unknown"

// DatasheetRecord holds structured facts scraped from a component datasheet.
// All fields are optional; consumers must tolerate any field being absent.
type DatasheetRecord struct {
	ComponentName       string            `json:"component_name,omitempty"`
	PinConfig           map[string]string `json:"pin_config,omitempty"`
	ElectricalSpecs     map[string]string `json:"electrical_specs,omitempty"`
	Features            []string          `json:"features,omitempty"`
	RecommendedCircuits []string          `json:"recommended_circuits,omitempty"`
	OperatingConditions map[string]string `json:"operating_conditions,omitempty"`
	PackageInfo         string            `json:"package_info,omitempty"`
}

// Normalize returns r, or a canonical empty record when r is nil. Applied once
// at the context-building boundary so downstream consumers never see nil.
func (r *DatasheetRecord) Normalize() *DatasheetRecord {
	if r == nil {
		return &DatasheetRecord{}
	}
	return r
}

// Usable reports whether the record identifies a component well enough to
// inform the analysis: present, named, and not the Unknown sentinel.
func (r *DatasheetRecord) Usable() bool {
	if r == nil || r.ComponentName == "" {
		return false
	}
	return r.ComponentName != UnknownComponent && r.ComponentName != "Unknown Component"
}
