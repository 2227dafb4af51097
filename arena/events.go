package arena

type EventType string

const (
	EventSpawned EventType = "spawned"
	EventDied    EventType = "died"
	EventRetuned EventType = "retuned"
)

// Event records something that happened to an alien during a tick.
type Event struct {
	Type    EventType
	AlienID string
	Tick    uint64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
