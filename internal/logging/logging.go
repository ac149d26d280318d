// Package logging builds the leveled console logger shared by the server and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"taskmanager/internal/config"

	"github.com/charmbracelet/log"
)

const Prefix = "taskmanager"

// New returns a logger configured from cfg. A nil writer means stderr.
func New(cfg config.Log, w io.Writer) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	formatter, err := parseFormatter(cfg.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          Prefix,
	}), nil
}

func parseFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", name)
	}
}
