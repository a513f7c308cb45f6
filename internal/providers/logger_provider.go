package providers

import (
	"donosync/internal/structures"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeStream
	TypeFrame
	TypeSpotlight
	TypeHTTP
)

func (t TypeEnum) String() string {
	switch t {
	case TypeStream:
		return "stream"
	case TypeFrame:
		return "frame"
	case TypeSpotlight:
		return "spotlight"
	case TypeHTTP:
		return "http"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

const logFileName = "donosync.log"

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	mode := os.FileMode(conf.Logger.Mode)
	if mode == 0 {
		mode = 0644
	}
	if err := os.MkdirAll(conf.Logger.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create log dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(conf.Logger.Dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	var out io.Writer = file
	if conf.Debug {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stdout})
	}

	return &LogProvider{
		logger: zerolog.New(out).Level(level).With().Timestamp().Logger(),
		file:   file,
	}, nil
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Error().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.logger.Info().Str("type", t.String()).Msgf(format, args...)
}

// Fatalf logs and terminates the process.
func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Fatal().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
	}
}
