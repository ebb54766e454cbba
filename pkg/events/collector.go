package events

// EventCollector is embedded in aggregates to buffer events raised by state
// transitions until the use case hands them to a publisher.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers an event.
func (c *EventCollector) Record(event DomainEvent) {
	c.pending = append(c.pending, event)
}

// Events returns the buffered events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.pending
}

// ClearEvents returns the buffered events and empties the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.pending
	c.pending = nil
	return collected
}
