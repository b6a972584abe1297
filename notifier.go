package filesearch

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier returns a Notifier that writes every event to the logger.
// Destructive events log as warnings, the rest as info.
func LogNotifier(l *zap.Logger) Notifier {
	return &logNotifier{log: l}
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Notify(_ context.Context, e Event) {
	fields := []zap.Field{
		zap.String("kind", e.Kind),
		zap.String("title", e.Title),
		zap.String("description", e.Description),
	}
	if e.Severity == SeverityDestructive {
		n.log.Warn("notification", fields...)
		return
	}
	n.log.Info("notification", fields...)
}

// MultiNotifier fans one event out to every notifier in order. Nil
// entries are skipped.
func MultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(ctx context.Context, e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, e)
		}
	}
}
