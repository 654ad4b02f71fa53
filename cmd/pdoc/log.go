package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a development logger on stderr without timestamps when
// verbose, otherwise a no-op logger.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.TimeKey = ""
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}
