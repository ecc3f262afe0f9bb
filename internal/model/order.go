package model

import "time"

// Order groups the tickets a user bought in a single booking.  Orders
// are created atomically with their tickets and never mutated afterwards;
// there is no pending or cancelled state.  Deleting the owning user
// cascades to the order and its tickets.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who placed the order.
//  CreatedAt – when the booking transaction committed.
type Order struct {
    ID        uint64    // orders.id
    UserID    uint64    // orders.user_id
    CreatedAt time.Time // orders.created_at
}

// Ticket is one booked seat on a journey.  The triple
// (JourneyID, Cargo, Seat) is globally unique across all tickets; the
// database enforces this with the uq_ticket_seat index, which is what
// keeps two concurrent bookings from selling the same seat.
//
// Fields:
//  ID        – primary key identifier.
//  Cargo     – cargo number, 1..train.cargo_num.
//  Seat      – seat number, 1..train.places_in_cargo.
//  JourneyID – journey the seat is booked on.
//  OrderID   – order the ticket belongs to.
type Ticket struct {
    ID        uint64 // tickets.id
    Cargo     uint32 // tickets.cargo
    Seat      uint32 // tickets.seat
    JourneyID uint64 // tickets.journey_id
    OrderID   uint64 // tickets.order_id
}
