// Package analysis implements the schematic analysis pipeline: request
// validation, context building, model invocation with retry, and response
// post-processing into structured findings.
package analysis

import "fmt"

// ValidationError reports a bad input caught before any model call: a missing
// schematic file, an unknown category, or an unreachable gateway.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ContextBuildError wraps any failure while assembling the prompt and image
// package.
type ContextBuildError struct {
	Err error
}

func (e *ContextBuildError) Error() string {
	return "context build failed: " + e.Err.Error()
}

func (e *ContextBuildError) Unwrap() error {
	return e.Err
}

// GenerationFailure reports exhaustion of the retry budget during model
// invocation. It carries the last underlying error.
type GenerationFailure struct {
	Attempts int
	Err      error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}
