package config

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const textHeader = `${time_rfc3339} ${level} ${prefix} ${short_file}:${line}`

// NewLogger builds the leveled logger shared by echo and the services. The
// json format keeps gommon's default header.
func NewLogger(prefix string, logCfg *Log, out io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(out)
	l.SetLevel(ParseLevel(logCfg.Level))
	if strings.EqualFold(logCfg.Format, "text") {
		l.SetHeader(textHeader)
	}
	return l
}

func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
