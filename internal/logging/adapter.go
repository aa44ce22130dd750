package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// BadgerAdapter exposes a zerolog logger through the badger.Logger
// interface so the cache stores log through the process logger. Badger
// terminates its messages with a newline, which zerolog would double.
type BadgerAdapter struct {
	log *zerolog.Logger
}

func NewBadgerAdapter(log *zerolog.Logger) *BadgerAdapter {
	return &BadgerAdapter{log: log}
}

func (a *BadgerAdapter) Errorf(format string, args ...any) {
	a.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (a *BadgerAdapter) Warningf(format string, args ...any) {
	a.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (a *BadgerAdapter) Infof(format string, args ...any) {
	a.log.Info().Msgf(strings.TrimSpace(format), args...)
}

func (a *BadgerAdapter) Debugf(format string, args ...any) {
	a.log.Debug().Msgf(strings.TrimSpace(format), args...)
}
