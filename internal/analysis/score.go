package analysis

import (
	"regexp"
	"strings"
)

// Confidence labels, derived from input richness and response characteristics.
// This is a heuristic estimate, not a model-reported probability.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Quality labels, estimating how thorough and technical the response is,
// independent of correctness.
const (
	QualityExcellent = "Excellent"
	QualityGood      = "Good"
	QualityFair      = "Fair"
	QualityBasic     = "Basic"
)

var confidenceRefRe = regexp.MustCompile(`(?i)(?:[RCLUQDG]\d+|pin\s*\d+)`)

// genericPhrases indicate a vague response; each present phrase lowers
// confidence slightly.
var genericPhrases = []string{"general", "typical", "usually", "might", "possibly"}

// ConfidenceScore estimates a bounded [0,1] confidence for a response.
// Base 0.5; +0.3 for a usable datasheet, +0.1 for a response over 500
// characters, +0.1 when more than 3 distinct component/pin references appear,
// -0.05 per generic phrase present.
func ConfidenceScore(response string, hasDatasheet bool) float64 {
	score := 0.5

	if hasDatasheet {
		score += 0.3
	}
	if len(response) > 500 {
		score += 0.1
	}

	distinct := make(map[string]bool)
	for _, ref := range confidenceRefRe.FindAllString(response, -1) {
		distinct[strings.ToLower(ref)] = true
	}
	if len(distinct) > 3 {
		score += 0.1
	}

	lower := strings.ToLower(response)
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			score -= 0.05
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// ConfidenceLabel maps a confidence score to its label.
func ConfidenceLabel(score float64) string {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// technicalTerms counted toward response depth, one point per distinct term,
// capped at 5.
var technicalTerms = []string{"voltage", "current", "resistance", "capacitance", "frequency", "power"}

// actionableWords counted toward actionability, one point per distinct word,
// capped at 5.
var actionableWords = []string{"recommend", "suggest", "should", "add", "remove", "change", "verify"}

// specificRefRe matches unit-bearing values, pin references, and component
// designators.
var specificRefRe = regexp.MustCompile(`(?i)\d+[kMGT]?[ΩFHVAWHz]|pin\s*\d+|[RCLUQDG]\d+`)

// QualityScore computes the unbounded quality score for a response:
// distinct technical terms (cap 5) + specific value/reference tokens (cap 10)
// + length bonuses (+2 over 300 chars, +2 more over 600) + distinct actionable
// words (cap 5).
func QualityScore(response string) int {
	lower := strings.ToLower(response)
	score := 0

	techCount := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			techCount++
		}
	}
	score += min(techCount, 5)

	refCount := len(specificRefRe.FindAllString(response, -1))
	score += min(refCount, 10)

	if len(response) > 300 {
		score += 2
	}
	if len(response) > 600 {
		score += 2
	}

	actionableCount := 0
	for _, word := range actionableWords {
		if strings.Contains(lower, word) {
			actionableCount++
		}
	}
	score += min(actionableCount, 5)

	return score
}

// QualityLabel maps a quality score to its label.
func QualityLabel(score int) string {
	switch {
	case score >= 15:
		return QualityExcellent
	case score >= 10:
		return QualityGood
	case score >= 5:
		return QualityFair
	default:
		return QualityBasic
	}
}
