package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. It defaults to a usable handler
// so packages can log before Init runs (tests included).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	// JSON handler for production-ready logging
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(Log)
}
