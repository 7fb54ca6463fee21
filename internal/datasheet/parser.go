package datasheet

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"selene/internal/models"
)

// Parser scrapes structured fields out of raw datasheet text.
type Parser struct {
	logger *zap.Logger
}

// NewParser returns a parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

var (
	multiSpaceRe   = regexp.MustCompile(` +`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	trailingWSRe   = regexp.MustCompile(`(?m)[ \t]+$`)
)

// cleanWhitespace collapses runs of spaces and excessive blank lines.
func cleanWhitespace(text string) string {
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return trailingWSRe.ReplaceAllString(text, "")
}

// Parse extracts all recognized fields from text. Extraction is best-effort:
// missing sections simply leave fields empty, and an unidentifiable part
// yields the Unknown sentinel component name.
func (p *Parser) Parse(text string) *models.DatasheetRecord {
	text = cleanWhitespace(text)

	record := &models.DatasheetRecord{
		ComponentName:       extractComponentName(text),
		PinConfig:           extractPinConfig(text),
		ElectricalSpecs:     extractElectricalSpecs(text),
		Features:            extractFeatures(text),
		RecommendedCircuits: extractRecommendedCircuits(text),
		OperatingConditions: extractOperatingConditions(text),
		PackageInfo:         extractPackageInfo(text),
	}

	p.logger.Info("parsed datasheet",
		zap.String("component", record.ComponentName),
		zap.Int("pins", len(record.PinConfig)),
		zap.Int("specs", len(record.ElectricalSpecs)),
		zap.Int("features", len(record.Features)),
	)
	return record
}

var componentNameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^([A-Z]+\d+[A-Z]*)\s`),
	regexp.MustCompile(`Part Number:\s*([A-Z]+\d+[A-Z]*)`),
	regexp.MustCompile(`Device:\s*([A-Z]+\d+[A-Z]*)`),
	regexp.MustCompile(`([A-Z]{2,}\d{3,}[A-Z]*)`),
}

// icPrefixes are common IC part-number families used as a last resort.
var icPrefixes = []string{"LM", "TL", "AD", "MAX", "LT", "MC", "NE", "OP", "TPS", "STM"}

// extractComponentName finds the part number near the top of the datasheet.
func extractComponentName(text string) string {
	head := text
	if len(head) > 1000 {
		head = head[:1000]
	}
	for _, re := range componentNameRes {
		if m := re.FindStringSubmatch(head); m != nil {
			return m[1]
		}
	}
	for _, prefix := range icPrefixes {
		re := regexp.MustCompile(prefix + `\d{3,}[A-Z]*`)
		if m := re.FindString(head); m != "" {
			return m
		}
	}
	return "Unknown Component"
}

// findSections returns the bodies of sections whose heading contains any of
// the keywords. A section runs from the line after the heading to the next
// blank line or ALL-CAPS heading. Bodies shorter than 50 characters are
// skipped; longer ones are capped at 2000.
func findSections(text string, keywords []string) []string {
	var sections []string
	for _, keyword := range keywords {
		re := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(keyword) + `[^\n]*\n(.*?)(\n\n|\n[A-Z][A-Z\s]+:|$)`)
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			body := m[1]
			if len(body) <= 50 {
				continue
			}
			if len(body) > 2000 {
				body = body[:2000]
			}
			sections = append(sections, body)
		}
	}
	return sections
}

var (
	pinTableRowRe = regexp.MustCompile(`(?m)^(\d+)\s+([A-Z]+\d*/?[A-Z]*)\s+(?:([IO/]+)\s+)?(.+)$`)
	pinLineRe     = regexp.MustCompile(`(?im)^Pin\s+(\d+)\s*[:\-]?\s*([A-Z]+\d*/?[A-Z]*)\s*[:\-]?\s*(.+)$`)
)

// extractPinConfig builds a pin id to function mapping from pin description
// sections and table-like rows.
func extractPinConfig(text string) map[string]string {
	pins := make(map[string]string)

	sections := findSections(text, []string{
		"pin configuration", "pin description", "pinout",
		"pin assignment", "pin functions", "terminal functions",
	})
	for _, section := range sections {
		for _, m := range pinTableRowRe.FindAllStringSubmatch(section, -1) {
			num, name, typ, desc := m[1], m[2], m[3], strings.TrimSpace(m[4])
			if typ != "" {
				pins[num] = fmt.Sprintf("%s (%s): %s", name, typ, desc)
			} else {
				pins[num] = fmt.Sprintf("%s: %s", name, desc)
			}
		}
	}

	for _, m := range pinLineRe.FindAllStringSubmatch(text, -1) {
		pins[m[1]] = fmt.Sprintf("%s: %s", m[2], strings.TrimSpace(m[3]))
	}

	if len(pins) == 0 {
		return nil
	}
	return pins
}

// electricalParams pairs a canonical parameter name with the symbol pattern
// that identifies it in datasheet text.
var electricalParams = []struct {
	name    string
	pattern string
}{
	{"supply voltage", `[Vv]cc|[Vv]dd|[Vv]supply`},
	{"operating voltage", `[Vv]op|[Vv]operating`},
	{"input voltage", `[Vv]in|[Vv]input`},
	{"output voltage", `[Vv]out|[Vv]output`},
	{"supply current", `[Ii]cc|[Ii]dd|[Ii]supply`},
	{"operating current", `[Ii]op|[Ii]operating`},
	{"power dissipation", `[Pp]d|[Pp]ower`},
	{"operating temperature", `[Tt]op|[Tt]emp`},
	{"frequency", `[Ff]req|[Ff]clk|MHz|kHz`},
	{"input offset voltage", `[Vv]os|[Vv]offset`},
	{"gain bandwidth", `GBW|GBWP`},
	{"slew rate", `SR|[Ss]lew`},
}

var specTableRe = regexp.MustCompile(`([A-Za-z ]+)\s*\|\s*([\d.]+)?\s*\|\s*([\d.]+)?\s*\|\s*([\d.]+)?\s*\|\s*([A-Za-z]+)?`)

// extractElectricalSpecs pulls parameter/value pairs from electrical
// characteristics sections and pipe-delimited tables.
func extractElectricalSpecs(text string) map[string]string {
	specs := make(map[string]string)

	sections := findSections(text, []string{
		"electrical characteristics", "electrical specifications",
		"dc characteristics", "ac characteristics", "absolute maximum ratings",
	})
	for _, section := range sections {
		for _, param := range electricalParams {
			re := regexp.MustCompile(`(?i)(?:` + param.pattern + `)[^\n]*?([\d.]+\s*[mkMGT]?[VvAaWwHhzZ])`)
			for _, m := range re.FindAllStringSubmatch(section, -1) {
				key := param.name
				full := strings.ToLower(m[0])
				switch {
				case strings.Contains(full, "min"):
					key += " (min)"
				case strings.Contains(full, "max"):
					key += " (max)"
				case strings.Contains(full, "typ"):
					key += " (typ)"
				}
				specs[key] = m[1]
			}
		}
	}

	// Parameter | Min | Typ | Max | Unit
	for _, m := range specTableRe.FindAllStringSubmatch(text, -1) {
		param := strings.TrimSpace(m[1])
		typ := m[3]
		if param == "" || typ == "" {
			continue
		}
		specs[param] = strings.TrimSpace(typ + " " + m[5])
	}

	if len(specs) == 0 {
		return nil
	}
	return specs
}

var (
	bulletRe   = regexp.MustCompile(`(?m)^\s*[•▪▫◦‣⁃]\s*(.+)$`)
	numberedRe = regexp.MustCompile(`(?m)^\d+\.\s*(.+)$`)
)

// extractFeatures collects bullet and numbered items from feature sections,
// deduplicated in order, capped at 20.
func extractFeatures(text string) []string {
	sections := findSections(text, []string{
		"features", "key features", "product features", "highlights",
	})

	var features []string
	seen := make(map[string]bool)
	add := func(item string) {
		item = strings.TrimSpace(item)
		if len(item) <= 10 || seen[item] {
			return
		}
		seen[item] = true
		features = append(features, item)
	}
	for _, section := range sections {
		for _, m := range bulletRe.FindAllStringSubmatch(section, -1) {
			add(m[1])
		}
		for _, m := range numberedRe.FindAllStringSubmatch(section, -1) {
			add(m[1])
		}
	}
	if len(features) > 20 {
		features = features[:20]
	}
	return features
}

var circuitNameRe = regexp.MustCompile(`Figure\s+\d+[:.]\s*([^\n]+)`)

// extractRecommendedCircuits summarizes application circuit sections as
// "name: description" strings.
func extractRecommendedCircuits(text string) []string {
	sections := findSections(text, []string{
		"typical application", "application circuit", "reference design",
		"recommended circuit", "typical circuit", "application example",
	})

	var circuits []string
	for i, section := range sections {
		name := fmt.Sprintf("Application Circuit %d", i+1)
		if m := circuitNameRe.FindStringSubmatch(section); m != nil {
			name = strings.TrimSpace(m[1])
		}
		desc := strings.TrimSpace(section)
		if idx := strings.IndexByte(desc, '\n'); idx > 0 {
			desc = desc[:idx]
		}
		if len(desc) > 200 {
			desc = desc[:200]
		}
		circuits = append(circuits, name+": "+desc)
	}
	return circuits
}

// operatingParams pairs a condition name with the pattern that captures its range.
var operatingParams = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"temperature", regexp.MustCompile(`[Tt]emperature[^\n]*?(-?\d+°?C?\s*to\s*\+?\d+°?C?)`)},
	{"voltage", regexp.MustCompile(`[Vv]oltage[^\n]*?(\d+\.?\d*\s*V?\s*to\s*\d+\.?\d*\s*V?)`)},
	{"humidity", regexp.MustCompile(`[Hh]umidity[^\n]*?(\d+%?\s*to\s*\d+%?)`)},
	{"altitude", regexp.MustCompile(`[Aa]ltitude[^\n]*?(\d+\s*m)`)},
}

func extractOperatingConditions(text string) map[string]string {
	sections := findSections(text, []string{
		"operating conditions", "recommended operating conditions",
		"operating ratings", "environmental conditions",
	})

	conditions := make(map[string]string)
	for _, section := range sections {
		for _, param := range operatingParams {
			if m := param.pattern.FindStringSubmatch(section); m != nil {
				conditions[param.name] = m[1]
			}
		}
	}
	if len(conditions) == 0 {
		return nil
	}
	return conditions
}

var packageRes = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z]+\d+\s*package`),
	regexp.MustCompile(`Package:\s*[A-Z]+\d+`),
	regexp.MustCompile(`(?:DIP|SOIC|TSSOP|QFN|LQFP|BGA|SOT)[-\s]?\d+`),
	regexp.MustCompile(`\d+[-\s]?pin\s+[A-Z]+`),
}

// extractPackageInfo returns the first package descriptor found near the top
// of the datasheet, or empty when none is found.
func extractPackageInfo(text string) string {
	head := text
	if len(head) > 5000 {
		head = head[:5000]
	}
	for _, re := range packageRes {
		if m := re.FindString(head); m != "" {
			return m
		}
	}
	return ""
}
