// Package messaging carries schedule change notifications between the
// API process and background workers.
package messaging

import (
	"context"
	"time"
)

// Channel names published by the API.
const (
	ChannelScheduleUpdated = "schedule.updated"
	ChannelProfileUpdated  = "profile.updated"
)

// Event is the envelope every published message uses.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
