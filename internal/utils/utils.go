package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

// LogOutput describes where log lines go and how they are rendered.
type LogOutput struct {
	Format     string // text | json
	File       string // optional; also written to stderr
	MaxSizeMB  int
	MaxBackups int
}

// ConfigureLogOutput applies out to Log. With a file set, lines go both to
// stderr and to a rotating file.
func ConfigureLogOutput(out LogOutput) error {
	switch strings.ToLower(out.Format) {
	case "", "text":
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", out.Format)
	}

	if out.File == "" {
		Log.SetOutput(os.Stderr)
		return nil
	}
	Log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   out.File,
		MaxSize:    out.MaxSizeMB,
		MaxBackups: out.MaxBackups,
	}))
	return nil
}
