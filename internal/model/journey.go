package model

import "time"

// Journey is a scheduled run of a train over a route.  Arrival must be
// after departure; the handler layer enforces this on create and update.
// Tickets reference journeys, so deleting a journey cascades to its
// tickets.
//
// Fields:
//  ID            – primary key identifier.
//  RouteID       – route the journey travels.
//  TrainID       – train operating the journey.
//  DepartureTime – scheduled departure (UTC).
//  ArrivalTime   – scheduled arrival (UTC).
type Journey struct {
    ID            uint64    // journeys.id
    RouteID       uint64    // journeys.route_id
    TrainID       uint64    // journeys.train_id
    DepartureTime time.Time // journeys.departure_time
    ArrivalTime   time.Time // journeys.arrival_time
}
