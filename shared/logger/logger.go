package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"bookit/config"
)

var consoleEnvs = []string{"", "local", "dev", "development"}

// InitLogger installs a console logger at trace level so configuration
// loading can already log. Configure replaces it once the config is known.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(console(os.Stdout)).With().Timestamp().Logger()
}

// Configure applies the level and output format for the environment. Local
// runs keep the console writer, every other environment logs JSON lines
// tagged with the service name.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Server.LogLevel))
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	if isConsole(cfg.Server.Env) {
		out = console(os.Stdout)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	if cfg.Server.Env != "" {
		ctx = ctx.Str("env", cfg.Server.Env)
	}

	log.Logger = ctx.Logger()
	log.Debug().Str("level", level.String()).Msg("logger configured")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

func console(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func isConsole(env string) bool {
	env = strings.ToLower(env)

	for _, candidate := range consoleEnvs {
		if env == candidate {
			return true
		}
	}

	return false
}
