package logger

import (
	"strings"

	"contech_bot/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bodyExcerptRunes caps how much of an inbound message ends up in a log line
const bodyExcerptRunes = 80

// New builds the process logger from the log section of the configuration.
// Every entry carries the deployment environment.
func New(cfg config.LogConfig, environment string) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         "console",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]interface{}{"environment": environment},
	}
	if cfg.JSON {
		zcfg.Encoding = "json"
	} else {
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if cfg.Debug {
		zcfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// BodyExcerpt flattens a WhatsApp message body onto one line and caps its
// length so that user text cannot flood the logs.
func BodyExcerpt(body string) string {
	flat := strings.Join(strings.Fields(body), " ")
	runes := []rune(flat)
	if len(runes) <= bodyExcerptRunes {
		return flat
	}
	return string(runes[:bodyExcerptRunes]) + "…"
}
