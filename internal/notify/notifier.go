package notify

import (
	"context"

	"github.com/maxbolgarin/logze/v2"
)

// Notifier delivers a finished summary text to some outbound channel. The
// pipeline treats delivery as a black box: it hands over the text and does
// not care about transport details.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// NopNotifier is used when no messaging transport is configured.
type NopNotifier struct {
	log logze.Logger
}

// NewNopNotifier creates a notifier that only logs at debug level.
func NewNopNotifier() *NopNotifier {
	return &NopNotifier{log: logze.With("component", "notifier")}
}

func (n *NopNotifier) Send(_ context.Context, message string) error {
	n.log.Debug("notifier disabled, dropping message", "length", len(message))
	return nil
}
