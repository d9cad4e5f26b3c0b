package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

func init() {
	// Default to text until Init is called with the configured environment.
	log = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Init configures the global logger. Production gets JSON output, everything
// else gets human-readable text with debug enabled.
func Init(env string) {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	log = slog.New(handler)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize tolerates call sites that pass a bare error (or any odd trailing
// value) instead of a full key-value pair.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
			continue
		}
		if i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i++
			continue
		}
		out = append(out, "detail", args[i])
	}
	return out
}
