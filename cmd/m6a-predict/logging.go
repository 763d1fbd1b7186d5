package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logConfig struct {
	Level     string
	File      string
	MaxSizeMB int
}

func logConfigFromViper() logConfig {
	return logConfig{
		Level:     viper.GetString("log.level"),
		File:      viper.GetString("log.file"),
		MaxSizeMB: viper.GetInt("log.max_size_mb"),
	}
}

// newLogger builds a console logger on stderr, or a JSON logger on a
// rotating file when cfg.File is set.
func newLogger(cfg logConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var (
		enc zapcore.Encoder
		ws  zapcore.WriteSyncer
	)
	if cfg.File == "" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
		ws = zapcore.Lock(os.Stderr)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: 3,
			Compress:   true,
		})
	}

	return zap.New(zapcore.NewCore(enc, ws, level)), nil
}
