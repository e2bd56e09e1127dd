package inits

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger 始终输出到终端，生产模式只保留 info 以上的级别
func Logger(debugMode bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableCaller = true
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l.Named("smoke"), nil
}
