package ports

// Event is a broadcast message fanned out to connected listeners.
type Event struct {
	Name    string
	Payload any
}

// EventBus is the process-wide publish/subscribe channel used for
// notification fan-out. Delivery is at-most-once: subscribers that are
// slow or disconnected miss events, and nothing is replayed.
type EventBus interface {
	Publish(ev Event)

	// Subscribe registers a listener for events matching filter (nil
	// matches everything). The returned func unsubscribes and closes
	// the channel.
	Subscribe(filter func(Event) bool) (<-chan Event, func())
}
