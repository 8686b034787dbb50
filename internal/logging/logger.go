package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Path string // log file, appended to
	Name string // logger name printed before each message

	// Rotation is off unless MaxSizeMB > 0.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	Stdout io.Writer // defaults to os.Stdout
}

// NewLogger builds a logger that writes every entry to stdout and to the
// file at cfg.Path. Writes are not buffered. The returned func syncs and
// closes the file.
func NewLogger(cfg Config) (*zap.Logger, func() error, error) {
	if cfg.Path == "" {
		return nil, nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file, closer, err := openFile(cfg)
	if err != nil {
		return nil, nil, err
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	enc := zapcore.NewConsoleEncoder(EncoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(stdout)), zap.InfoLevel),
		zapcore.NewCore(enc.Clone(), file, zap.InfoLevel),
	)

	log := zap.New(core)
	if cfg.Name != "" {
		log = log.Named(cfg.Name)
	}

	closeFn := func() error {
		return multierr.Combine(file.Sync(), closer.Close())
	}
	return log, closeFn, nil
}

// EncoderConfig renders "<ts> <LEVEL> <name>: <msg>".
func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(name + ":")
	}
	cfg.ConsoleSeparator = " "
	return cfg
}

func openFile(cfg Config) (zapcore.WriteSyncer, io.Closer, error) {
	if cfg.MaxSizeMB > 0 {
		lj := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,
		}
		return zapcore.AddSync(lj), lj, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.Lock(f), f, nil
}
