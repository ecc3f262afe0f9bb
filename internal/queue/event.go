// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type OrderCreatedEvent struct {
    OrderID     uint64        `json:"order_id"`
    UserID      uint64        `json:"user_id"`
    Tickets     []TicketEvent `json:"tickets"`
    TicketCount int           `json:"ticket_count"`
    CreatedAt   string        `json:"created_at"`
}

// TicketEvent is one booked seat inside an OrderCreatedEvent.
type TicketEvent struct {
    JourneyID uint64 `json:"journey"`
    Cargo     uint32 `json:"cargo"`
    Seat      uint32 `json:"seat"`
}
