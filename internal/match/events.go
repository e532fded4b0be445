package match

import "time"

// EventType identifies a match domain event.
type EventType string

const (
	EventTypeGameStart    EventType = "game_start"
	EventTypeGamePause    EventType = "game_pause"
	EventTypeGameResume   EventType = "game_resume"
	EventTypePeriodEnd    EventType = "period_end"
	EventTypePeriodResume EventType = "period_resume"
	EventTypeSubstitution EventType = "substitution"
	EventTypeAdjustment   EventType = "adjustment"
	EventTypeStoppage     EventType = "stoppage"
	EventTypeGameEnd      EventType = "game_end"
	EventTypeUndo         EventType = "undo"
)

// String returns the string representation of the event type.
func (et EventType) String() string { return string(et) }

// Event is published after each successful command so collaborators
// (console, report writers) can react without polling engine internals.
type Event struct {
	Type EventType
	At   time.Time
	// Out and In are set for substitutions.
	Out PlayerID
	In  PlayerID
	// Period is the period index after the command.
	Period int
	// Elapsed is total match time when the event fired.
	Elapsed time.Duration
}

// EventSubscriber receives published match events.
type EventSubscriber interface {
	OnEvent(Event)
}

// EventBus distributes match events to subscribers.
type EventBus interface {
	Subscribe(EventSubscriber)
	Unsubscribe(EventSubscriber)
	Publish(Event)
}

// SimpleEventBus is a basic in-memory event bus. Publish runs subscribers
// synchronously on the caller's goroutine; the engine publishes while
// holding its lock, so subscribers must not call back into it.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(sub EventSubscriber) {
	bus.subscribers = append(bus.subscribers, sub)
}

func (bus *SimpleEventBus) Unsubscribe(sub EventSubscriber) {
	for i, s := range bus.subscribers {
		if s == sub {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

func (bus *SimpleEventBus) Publish(event Event) {
	for _, s := range bus.subscribers {
		s.OnEvent(event)
	}
}
