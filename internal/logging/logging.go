package logging

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var ErrInvalidLogFormat = errors.New("invalid log format")

func CreateLogger(level zerolog.Level, format string, out io.Writer) (zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer

	switch format {
	case "json":
		writer = out
	case "console":
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.TimeFormat = time.RFC3339
		})
	default:
		return zerolog.Logger{}, fmt.Errorf("%w: %s", ErrInvalidLogFormat, format)
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Caller().Logger(), nil
}
