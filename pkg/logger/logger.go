package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init sets up the process-wide logger. Development gets human readable
// text at debug level, everything else JSON at info level.
func Init(environment string) {
	var handler slog.Handler

	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	logger().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, normalize(args)...)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	logger().Error(msg, normalize(args)...)
	os.Exit(1)
}

func logger() *slog.Logger {
	if log == nil {
		return slog.Default()
	}

	return log
}

// normalize lets call sites pass a bare error (or any single value) without
// a key, turning it into a proper attribute instead of slog's !BADKEY.
func normalize(args []any) []any {
	out := make([]any, 0, len(args))

	for i := 0; i < len(args); i++ {
		if _, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i++
			continue
		}

		switch v := args[i].(type) {
		case error:
			out = append(out, slog.Any("error", v))
		case slog.Attr:
			out = append(out, v)
		default:
			out = append(out, slog.Any("detail", v))
		}
	}

	return out
}
