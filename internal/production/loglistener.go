package production

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/comalice/composex"
)

// LogListener is a composex.Listener that writes each state change through
// a structured logger.
type LogListener struct {
	id  string
	log zerolog.Logger
}

// NewLogListener creates a logging listener with the given identity.
func NewLogListener(id string, log zerolog.Logger) *LogListener {
	return &LogListener{id: id, log: log}
}

func (l *LogListener) ID() string { return l.id }

func (l *LogListener) OnChange(ctx context.Context, state any) error {
	l.log.Info().
		Str("listener", l.id).
		Interface("state", state).
		Msg("state changed")
	return nil
}

// assert interface compliance
var _ composex.Listener = (*LogListener)(nil)
