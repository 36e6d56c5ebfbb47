package reactor

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/safety"
)

const (
	// EventLogCapacity bounds the event log.
	EventLogCapacity = 200
	// EventDebounce is the window in simulated seconds during which a repeat
	// of the same event is dropped.
	EventDebounce = 5.0
)

type EventKind int

const (
	// EventTrip records an active trip reason.
	EventTrip EventKind = iota
	// EventScram records the transition into the scrammed state.
	EventScram
	// EventStatus records a change of thermal status.
	EventStatus
)

func (k EventKind) String() string {
	switch k {
	case EventTrip:
		return "trip"
	case EventScram:
		return "scram"
	case EventStatus:
		return "status"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for _, v := range []EventKind{EventTrip, EventScram, EventStatus} {
		if v.String() == string(text) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("reactor: unknown event kind %q", text)
}

// Event is a timeline entry. Trip is set for EventTrip, Status for EventStatus.
type Event struct {
	Time   float64        `json:"time"`
	Kind   EventKind      `json:"kind"`
	Trip   safety.Trip    `json:"trip"`
	Status physics.Status `json:"status"`
}

type eventKey struct {
	kind   EventKind
	trip   safety.TripKind
	status physics.Status
}

func (e Event) key() eventKey {
	k := eventKey{kind: e.Kind}
	switch e.Kind {
	case EventTrip:
		k.trip = e.Trip.Kind
	case EventStatus:
		k.status = e.Status
	}
	return k
}

type eventLog struct {
	entries  *ring[Event]
	lastSeen map[eventKey]float64
}

func newEventLog() *eventLog {
	return &eventLog{
		entries:  newRing[Event](EventLogCapacity),
		lastSeen: make(map[eventKey]float64),
	}
}

func (l *eventLog) record(e Event) bool {
	k := e.key()
	if t, ok := l.lastSeen[k]; ok && e.Time-t < EventDebounce {
		return false
	}
	l.lastSeen[k] = e.Time
	l.entries.push(e)
	return true
}

// observe compares two consecutive snapshots and records what changed.
func (l *eventLog) observe(now float64, prev, next Telemetry) {
	if next.Scram && !prev.Scram {
		l.record(Event{Time: now, Kind: EventScram})
	}
	for _, trip := range next.Trips {
		l.record(Event{Time: now, Kind: EventTrip, Trip: trip})
	}
	if next.Status != prev.Status {
		l.record(Event{Time: now, Kind: EventStatus, Status: next.Status})
	}
}
