// internal/events/sink.go
package events

import (
	"github.com/sirupsen/logrus"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

// LogSink writes every marketplace event as a structured log line.
type LogSink struct{}

func (LogSink) Publish(ev marketplace.Event) {
	logrus.WithFields(logrus.Fields{
		"event_id": ev.ID,
		"event":    ev.Name,
		"block":    ev.Block,
		"payload":  ev.Payload,
	}).Info("Marketplace event published")
}

// Multi fans one event out to several sinks in order.
type Multi []marketplace.EventSink

func (m Multi) Publish(ev marketplace.Event) {
	for _, s := range m {
		s.Publish(ev)
	}
}
