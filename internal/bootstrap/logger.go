package bootstrap

import (
	"web-ui-harness/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newLogger(config *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.AppConfig.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.DisableStacktrace = true

	switch config.AppConfig.LogLevel {
	case "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	logger, err := zapConfig.Build(fileCore(config.AppConfig, zapConfig.Level))
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// fileCore tees JSON logs into a rotated LOG_FILE when one is configured.
func fileCore(app *config.AppConfig, level zap.AtomicLevel) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		if app.LogFile == "" {
			return core
		}

		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   app.LogFile,
			MaxSize:    app.LogMaxSizeMB,
			MaxBackups: app.LogMaxBackups,
		})
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

		return zapcore.NewTee(core, zapcore.NewCore(encoder, writer, level))
	})
}
