package logging

import (
	"fmt"
	"io"
	log "log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

type Config struct {
	Level      string
	Dir        string // empty disables the rotating file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup installs the default logger. With a Dir, the same tint stream also
// goes (uncoloured) to a rotating jarvis.log. The returned closer flushes it.
func Setup(cfg Config, stdout io.Writer) (io.Closer, error) {
	level, ok := logLevelMap[cfg.Level]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	if cfg.Dir == "" {
		log.SetDefault(log.New(tint.NewHandler(stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})))
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "jarvis.log"),
		MaxSize:    orDefault(cfg.MaxSizeMB, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 14),
		Compress:   true,
	}

	log.SetDefault(log.New(tint.NewHandler(io.MultiWriter(stdout, file), &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})))

	return file, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
