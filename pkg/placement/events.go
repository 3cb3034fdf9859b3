package placement

import "github.com/Yuminaga-Ten/Ease/pkg/grid"

// EventKind identifies what changed in the settlement.
type EventKind int

const (
	EventMainBuildingPlaced EventKind = iota + 1
	EventMainBuildingMoved
	EventRoadsCommitted
	EventRoadsErased
	EventConnectivityChanged
)

func (k EventKind) String() string {
	switch k {
	case EventMainBuildingPlaced:
		return "main_building_placed"
	case EventMainBuildingMoved:
		return "main_building_moved"
	case EventRoadsCommitted:
		return "roads_committed"
	case EventRoadsErased:
		return "roads_erased"
	case EventConnectivityChanged:
		return "connectivity_changed"
	default:
		return "unknown"
	}
}

// Event is one notification. Cells lists the affected cells, if any.
type Event struct {
	Kind  EventKind
	Cells []grid.Cell
	Count int // active roads for EventConnectivityChanged
}

// Handler receives events of the kind it subscribed to.
type Handler func(Event)

// Bus delivers events synchronously to subscribers in subscription order.
type Bus struct {
	handlers map[EventKind][]Handler
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventKind][]Handler),
	}
}

// Subscribe registers fn for events of kind.
func (b *Bus) Subscribe(kind EventKind, fn Handler) {
	b.handlers[kind] = append(b.handlers[kind], fn)
}

// Emit calls every handler subscribed to e.Kind before returning.
func (b *Bus) Emit(e Event) {
	for _, fn := range b.handlers[e.Kind] {
		fn(e)
	}
}
