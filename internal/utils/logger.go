package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Production gets JSON output,
// everything else the console encoder.
func NewLogger(level, environment string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var cfg zap.Config
	if strings.EqualFold(environment, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// LogEvent writes a standardized module/action line. Keep payloads out of
// fields; medical notes and prescriptions must never reach the log.
func LogEvent(log *zap.Logger, requestID, module, action string, fields ...zap.Field) {
	if log == nil {
		return
	}
	base := []zap.Field{
		zap.String("module", module),
		zap.String("action", action),
	}
	if req := strings.TrimSpace(requestID); req != "" {
		base = append(base, zap.String("request_id", req))
	}
	log.Info(module+"."+action, append(base, fields...)...)
}
