// Package logginglogiface adapts a github.com/joeycumines/logiface.Logger[E]
// into the frost.Logger contract, so an embedder that already runs a
// logiface pipeline (stumpy, logrus, zerolog, or any other Event backend)
// can point the engine's diagnostics at it instead of frost's own
// TextLogger.
//
// The teacher (go-eventloop) declares a dependency on logiface but never
// actually imports it outside its test files; this package is frost's real,
// exercised use of it.
package logginglogiface

import (
	"github.com/TheSnowfield/frost"
	"github.com/joeycumines/logiface"
)

// Adapter implements frost.Logger on top of a logiface.Logger[E].
type Adapter[E logiface.Event] struct {
	logger *logiface.Logger[E]
}

// New constructs an Adapter wrapping l.
func New[E logiface.Event](l *logiface.Logger[E]) *Adapter[E] {
	return &Adapter[E]{logger: l}
}

func toLogifaceLevel(l frost.Level) logiface.Level {
	switch l {
	case frost.LevelDebug:
		return logiface.LevelDebug
	case frost.LevelInfo:
		return logiface.LevelInformational
	case frost.LevelWarn:
		return logiface.LevelWarning
	case frost.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

// IsEnabled reports whether the underlying logiface.Logger would accept an
// entry at level.
func (a *Adapter[E]) IsEnabled(level frost.Level) bool {
	return a.logger.Level() >= toLogifaceLevel(level)
}

// Log renders entry through the underlying logiface.Logger's fluent
// Builder, one Str field per entry.Fields key plus the component tag.
func (a *Adapter[E]) Log(entry frost.LogEntry) {
	b := a.logger.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str("component", entry.Component)
	for k, v := range entry.Fields {
		if s, ok := v.(string); ok {
			b = b.Str(k, s)
		}
	}
	b.Log(entry.Message)
}

var _ frost.Logger = (*Adapter[logiface.Event])(nil)
