package logger

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const serviceName = "draft-order"

func New() zerolog.Logger {
	return SetLevel(zerolog.DebugLevel)
}

func SetLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger().
		Level(level)
}

var Module = fx.Provide(New)
