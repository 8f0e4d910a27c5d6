package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Encoding string `envconfig:"ENCODING" default:"console"` // console | json
	Level    string `envconfig:"LEVEL" default:"info"`
	// AddSource длинные пути к файлам, в проде обычно выключено
	AddSource bool `envconfig:"ADD_SOURCE" default:"false"`
	// Dir если задан, логи дублируются в файл bot_YYYY-MM-DD.log
	Dir string `envconfig:"DIR"`
}

// New логгер приложения; неверный конфиг - паника на старте
func New(app string, cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Encoding) {
	case "json":
		handler = slog.NewJSONHandler(output(os.Stdout, cfg.Dir), opts)
	case "console", "":
		handler = slog.NewTextHandler(output(os.Stderr, cfg.Dir), opts)
	default:
		panic(fmt.Errorf("invalid logger config: encoding %s is not supported", cfg.Encoding))
	}

	return slog.New(handler).With("app", app)
}

func output(std io.Writer, dir string) io.Writer {
	if dir == "" {
		return std
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(fmt.Errorf("invalid logger config: cannot create dir %s: %w", dir, err))
	}
	return io.MultiWriter(std, NewDailyFile(dir))
}

func parseLevel(level string) slog.Level {
	if level == "" {
		return slog.LevelInfo
	}
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		panic(fmt.Errorf("invalid logger config: level %s is not supported", level))
	}
	return l
}
