package logger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/utils"
)

// IMEIKey is the attribute key under which IMEIs are logged.
// Values logged under it are masked when identifier masking is enabled.
const IMEIKey = "imei"

// Free-text attributes that may embed an IMEI. Any 15-digit run in them is
// masked when identifier masking is enabled.
const (
	pathKey  = "path"
	errorKey = "error"
)

// NewAppLogger creates a new AppLogger instance writing to out with the specified level and output format.
func NewAppLogger(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	level, err := toSlogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	if cfg.MaskIdentifiers {
		opts.ReplaceAttr = maskIdentifiers
	}

	handler, err := toSlogHandler(cfg.Format, out, opts)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	slogLogger := slog.New(handler)
	slog.SetDefault(slogLogger)

	return NewSlogAdapter(slogLogger), nil
}

func maskIdentifiers(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case IMEIKey:
		return slog.String(a.Key, utils.MaskIMEI(a.Value.String()))
	case pathKey, errorKey, slog.MessageKey:
		return slog.String(a.Key, utils.MaskIMEIsInText(a.Value.String()))
	}
	return a
}

// toSlogLevel converts a config.LogLevel to a slog.Level.
func toSlogLevel(level config.LogLevel) (slog.Level, error) {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn:
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported logger level: %s", level)
	}
}

// toSlogHandler creates a slog.Handler based on the config.LogFormat.
func toSlogHandler(format config.LogFormat, out io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case config.LogFormatText:
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
