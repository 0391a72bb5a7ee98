package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the service logger: JSON output in production, human readable
// console output otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
