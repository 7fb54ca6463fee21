package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"selene/internal/config"
	"selene/internal/imaging"
	"selene/internal/models"
	"selene/internal/prompt"
	"selene/pkg/utils"
)

// Context is the fully assembled request for one analysis run: the rendered
// prompt, the prepared image, and the echoed datasheet facts used for
// downstream metadata. Built once per request and not mutated afterward.
type Context struct {
	Prompt             string
	Image              *imaging.Package
	Category           string
	HasDatasheet       bool
	DatasheetComponent string
	DatasheetSummary   string
	Timestamp          time.Time
}

// ContextBuilder merges schematic, datasheet, and template inputs into one
// analysis context.
type ContextBuilder struct {
	blockChars int
	logger     *zap.Logger
}

// NewContextBuilder creates a builder; blockChars caps each datasheet text
// block merged into the prompt.
func NewContextBuilder(cfg *config.AnalysisConfig, logger *zap.Logger) *ContextBuilder {
	return &ContextBuilder{
		blockChars: cfg.ContextBlockChars,
		logger:     logger,
	}
}

// Build assembles the analysis context. The datasheet record is normalized at
// this boundary: a nil record becomes a canonical empty one, and HasDatasheet
// is true only when the record names a known component.
func (b *ContextBuilder) Build(img *imaging.Package, record *models.DatasheetRecord, category, customQuery string) (*Context, error) {
	record = record.Normalize()

	ctx := &Context{
		Image:              img,
		Category:           category,
		HasDatasheet:       record.Usable(),
		DatasheetComponent: record.ComponentName,
		Timestamp:          time.Now(),
	}
	if ctx.DatasheetComponent == "" {
		ctx.DatasheetComponent = models.UnknownComponent
	}
	ctx.DatasheetSummary = datasheetSummary(record)

	var err error
	if category == models.CustomQuery {
		ctx.Prompt, err = b.buildCustomPrompt(ctx, record, customQuery)
	} else {
		ctx.Prompt = b.buildPresetPrompt(ctx, record, category)
	}
	if err != nil {
		return nil, err
	}

	b.logger.Debug("built analysis context",
		zap.String("category", category),
		zap.Bool("has_datasheet", ctx.HasDatasheet),
		zap.Int("prompt_len", len(ctx.Prompt)),
	)
	return ctx, nil
}

// datasheetSummary produces a one-line digest of the record: component name,
// up to three features, presence of operating conditions, and package info.
// Falls back to a fixed sentence when no informative field exists.
func datasheetSummary(record *models.DatasheetRecord) string {
	var parts []string

	if record.Usable() {
		parts = append(parts, "Component: "+record.ComponentName)
	}
	if len(record.Features) > 0 {
		features := record.Features
		if len(features) > 3 {
			features = features[:3]
		}
		parts = append(parts, "Features: "+strings.Join(features, ", "))
	}
	if len(record.OperatingConditions) > 0 {
		parts = append(parts, "Has operating conditions specifications")
	}
	if record.PackageInfo != "" {
		parts = append(parts, "Package: "+record.PackageInfo)
	}

	if len(parts) == 0 {
		return "Limited datasheet information available"
	}
	return strings.Join(parts, " | ")
}

// formatPinConfig renders the pin mapping as "pin: description" lines in
// sorted pin order, truncated to the block budget with an ellipsis marker.
func (b *ContextBuilder) formatPinConfig(pins map[string]string) string {
	keys := make([]string, 0, len(pins))
	for k := range pins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+pins[k])
	}
	return utils.Truncate(strings.Join(lines, "\n"), b.blockChars)
}

// specPriorities orders electrical parameters so the most design-relevant
// entries surface first in the prompt.
var specPriorities = []string{"voltage", "current", "power", "frequency", "temperature", "temp"}

// formatElectricalSpecs renders specs with priority parameters first, capped
// at 15 entries and the block character budget.
func (b *ContextBuilder) formatElectricalSpecs(specs map[string]string) string {
	const maxSpecs = 15

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	isPriority := func(key string) bool {
		lower := strings.ToLower(key)
		for _, p := range specPriorities {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}

	var lines []string
	for _, k := range keys {
		if isPriority(k) {
			lines = append(lines, k+": "+specs[k])
		}
	}
	for _, k := range keys {
		if !isPriority(k) && len(lines) < maxSpecs {
			lines = append(lines, k+": "+specs[k])
		}
	}
	if len(lines) > maxSpecs {
		lines = lines[:maxSpecs]
	}
	return utils.Truncate(strings.Join(lines, "\n"), b.blockChars)
}

// buildPresetPrompt assembles: role framing, datasheet blocks when present,
// the category template, and a closing instruction.
func (b *ContextBuilder) buildPresetPrompt(ctx *Context, record *models.DatasheetRecord, category string) string {
	var sb strings.Builder
	sb.WriteString("You are analyzing an electronic schematic with the following context:\n\n")

	if ctx.HasDatasheet {
		sb.WriteString("DATASHEET INFORMATION:\n")
		sb.WriteString("Component: " + record.ComponentName + "\n")
		sb.WriteString("Summary: " + ctx.DatasheetSummary + "\n\n")

		if len(record.PinConfig) > 0 {
			sb.WriteString("PIN CONFIGURATION:\n")
			sb.WriteString(b.formatPinConfig(record.PinConfig) + "\n\n")
		}
		if len(record.ElectricalSpecs) > 0 {
			sb.WriteString("KEY SPECIFICATIONS:\n")
			sb.WriteString(b.formatElectricalSpecs(record.ElectricalSpecs) + "\n\n")
		}
	}

	sb.WriteString("ANALYSIS REQUEST:\n")
	sb.WriteString(prompt.Template(category))
	sb.WriteString("\n\nPlease analyze the schematic image and provide specific, actionable feedback.")
	if ctx.HasDatasheet {
		sb.WriteString("\nReference the datasheet information where applicable.")
	}
	return sb.String()
}

// buildCustomPrompt assembles: role framing with component name when known,
// the user query verbatim, datasheet blocks when present, and a closing
// instruction. An empty query is an error; validation normally rejects it
// before this point.
func (b *ContextBuilder) buildCustomPrompt(ctx *Context, record *models.DatasheetRecord, customQuery string) (string, error) {
	if strings.TrimSpace(customQuery) == "" {
		return "", fmt.Errorf("custom query cannot be empty")
	}

	var sb strings.Builder
	sb.WriteString("You are analyzing an electronic schematic. ")
	if ctx.HasDatasheet {
		sb.WriteString("The schematic is for a " + record.ComponentName + ". ")
		sb.WriteString("I have provided relevant datasheet information below for reference. ")
	}

	sb.WriteString("\n\nUSER QUERY:\n")
	sb.WriteString(customQuery)
	sb.WriteString("\n")

	if ctx.HasDatasheet {
		sb.WriteString("\nDATASHEET CONTEXT:\n")
		sb.WriteString("Component: " + record.ComponentName + "\n")
		sb.WriteString("Summary: " + ctx.DatasheetSummary + "\n")
		if len(record.PinConfig) > 0 {
			sb.WriteString("\nPIN CONFIGURATION:\n")
			sb.WriteString(b.formatPinConfig(record.PinConfig) + "\n")
		}
	}

	sb.WriteString("\nPlease analyze the schematic image and answer the user's query. ")
	sb.WriteString("Provide specific details and reference the datasheet where applicable.")
	return sb.String(), nil
}
