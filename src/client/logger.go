package client

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the diagnostic logger. It writes to errOut only, never to
// stdout. Debug mode forces the debug level; level "" or "off" disables logging.
func NewLogger(config *CLIConfig, errOut io.Writer) (*zap.Logger, error) {
	levelName := config.Logging.Level
	if config.Debug {
		levelName = "debug"
	}
	if levelName == "" || levelName == "off" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("logging.level: %v", err))
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(errOut),
		level,
	)
	return zap.New(core), nil
}
