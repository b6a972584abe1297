package tui

import (
	"context"

	filesearch "github.com/pr-poehali-dev/file-search-app"
)

// Notifier buffers engine events for the running program. Notify never
// blocks the caller: when the buffer is full the event is dropped.
type Notifier struct {
	ch chan filesearch.Event
}

// NewNotifier creates a notifier for one program run.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan filesearch.Event, 16)}
}

// Notify implements the filesearch.Notifier contract.
func (n *Notifier) Notify(_ context.Context, e filesearch.Event) {
	select {
	case n.ch <- e:
	default:
	}
}

// Events exposes the buffered event stream to the model.
func (n *Notifier) Events() <-chan filesearch.Event {
	return n.ch
}
