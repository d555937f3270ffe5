package settings

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type LogSettings struct {
	Level string `yaml:"level"`
	// Pretty selects the human readable console format over JSON lines.
	Pretty bool `yaml:"pretty"`
}

func (l LogSettings) ParseLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(ErrInvalid, "log level %q", l.Level)
	}
	return level, nil
}

// ApplyLevel sets the process-wide zerolog level. Loggers built by NewLogger
// do not carry a level of their own, so calling ApplyLevel again after a
// reload raises or lowers their output immediately.
func (l LogSettings) ApplyLevel() error {
	level, err := l.ParseLevel()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// NewLogger builds the logger of one run and applies the configured level.
// Every event carries a run_id.
func (l LogSettings) NewLogger(w io.Writer) (zerolog.Logger, error) {
	if err := l.ApplyLevel(); err != nil {
		return zerolog.Nop(), err
	}

	if l.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger(), nil
}
