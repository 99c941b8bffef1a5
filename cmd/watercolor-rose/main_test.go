package main

import (
	"testing"

	"github.com/frankievx/watercolor-rose/internal/config"
	"github.com/frankievx/watercolor-rose/internal/logger"
	"go.uber.org/zap"
)

func TestSetupLoggingEmptyLevelUsesInfo(t *testing.T) {
	prev := logger.Log
	defer func() { logger.Log = prev }()

	if err := setupLogging(config.LoggingConfig{}); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if !logger.Log.Core().Enabled(zap.InfoLevel) {
		t.Error("info level should be enabled")
	}
	if logger.Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug level should be disabled by default")
	}
}

func TestSetupLoggingConfiguredLevel(t *testing.T) {
	prev := logger.Log
	defer func() { logger.Log = prev }()

	if err := setupLogging(config.LoggingConfig{Level: "debug"}); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if !logger.Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	if err := setupLogging(config.LoggingConfig{Level: "chatty"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
