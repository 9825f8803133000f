package actor

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrUnhandledState is returned when an agent is asked for a value its current
// state defines no rule for.
var ErrUnhandledState = errors.New("unhandled state")

func unhandled(who string, state fmt.Stringer) error {
	return fmt.Errorf("actor: %s speed in state %s: %w", who, state, ErrUnhandledState)
}

func stateName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("state(%d)", i)
	}
	return names[i]
}

func logEntry(log *logrus.Entry) *logrus.Entry {
	if log != nil {
		return log
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return logrus.NewEntry(quiet)
}
