package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the contract every event published by the HR service satisfies.
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	EventType   string    `json:"eventType"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

// HREvent is the single concrete event shape; Detail holds the type-specific fields.
type HREvent struct {
	BaseEvent
	Detail map[string]interface{} `json:"detail"`
}

// New creates an event for the aggregate identified by aggregateID.
func New(eventType string, aggregateID int, detail map[string]interface{}) *HREvent {
	if detail == nil {
		detail = map[string]interface{}{}
	}
	return &HREvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			AggregateID: strconv.Itoa(aggregateID),
			EventType:   eventType,
			Timestamp:   time.Now().UTC(),
			Version:     1,
		},
		Detail: detail,
	}
}

// GetEventID returns the unique event identifier
func (e *HREvent) GetEventID() string {
	return e.EventID
}

// GetEventType returns the event type
func (e *HREvent) GetEventType() string {
	return e.EventType
}

// GetAggregateID returns the aggregate ID
func (e *HREvent) GetAggregateID() string {
	return e.AggregateID
}

// GetTimestamp returns the event timestamp
func (e *HREvent) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetVersion returns the event version
func (e *HREvent) GetVersion() int {
	return e.Version
}
