package dom

// Event types dispatched by the document model.
const (
	EventResize = "resize"
	EventScroll = "scroll"
)

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	PhaseNone      EventPhase = 0
	PhaseCapturing EventPhase = 1
	PhaseAtTarget  EventPhase = 2
	PhaseBubbling  EventPhase = 3
)

// Event is a dispatched DOM event. A nil Target denotes the document (or,
// for resize, the window).
type Event struct {
	Type    string
	Target  *Element
	Bubbles bool
	Phase   EventPhase
}

// Listener handles an event.
type Listener func(*Event)

// ListenerID identifies a registered listener for removal.
type ListenerID int

type eventListener struct {
	id      ListenerID
	fn      Listener
	capture bool
}

// EventTarget manages event listeners for a window, document or element.
type EventTarget struct {
	listeners map[string][]eventListener
	nextID    ListenerID
}

// NewEventTarget creates an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string][]eventListener)}
}

// AddEventListener registers fn for the event type and returns an id for
// RemoveEventListener.
func (et *EventTarget) AddEventListener(eventType string, fn Listener, capture bool) ListenerID {
	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], eventListener{
		id:      et.nextID,
		fn:      fn,
		capture: capture,
	})
	return et.nextID
}

// RemoveEventListener unregisters a listener. Unknown ids are ignored.
func (et *EventTarget) RemoveEventListener(eventType string, id ListenerID) {
	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			et.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			break
		}
	}
	if len(et.listeners[eventType]) == 0 {
		delete(et.listeners, eventType)
	}
}

// ListenerCount returns the number of listeners for an event type.
func (et *EventTarget) ListenerCount(eventType string) int {
	return len(et.listeners[eventType])
}

// invoke calls the listeners that apply to phase. The listener slice is
// copied so listeners may add or remove listeners while running.
func (et *EventTarget) invoke(ev *Event, phase EventPhase) {
	listeners := append([]eventListener(nil), et.listeners[ev.Type]...)
	ev.Phase = phase
	for _, l := range listeners {
		if phase == PhaseCapturing && !l.capture {
			continue
		}
		if phase == PhaseBubbling && l.capture {
			continue
		}
		l.fn(ev)
	}
}
