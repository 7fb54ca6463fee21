package utils

import "go.uber.org/zap"

// NewLogger builds the process-wide zap logger. Debug selects the development
// config (console encoder, debug level) so prompt assembly and pipeline
// details are visible; otherwise the JSON production config is used.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
