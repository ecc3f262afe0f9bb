package booking

import (
    "errors"
    "fmt"
)

// ErrEmptyBatch is returned when a booking request contains no tickets.
var ErrEmptyBatch = errors.New("order must contain at least one ticket")

// ErrJourneyNotFound is the sentinel Catalog implementations return when
// a journey id resolves to nothing.  The validator wraps it into an
// UnknownJourneyError naming the offending id.
var ErrJourneyNotFound = errors.New("journey not found")

// UnknownJourneyError reports a seat request referencing a journey that
// does not exist in the catalog.
type UnknownJourneyError struct {
    JourneyID uint64
}

func (e *UnknownJourneyError) Error() string {
    return fmt.Sprintf("journey %d does not exist", e.JourneyID)
}

// OutOfRangeError reports a cargo or seat number outside the train's
// bounds.  Field is "cargo" or "seat"; Max is the inclusive upper bound
// (the lower bound is always 1).
type OutOfRangeError struct {
    Field string
    Value uint32
    Max   uint32
}

func (e *OutOfRangeError) Error() string {
    return fmt.Sprintf("%s number must be between 1 and %d, got %d", e.Field, e.Max, e.Value)
}

// DuplicateSeatError reports the same (journey, cargo, seat) appearing
// more than once within a single booking request.  This is a structural
// defect of the request and is rejected before any transaction opens.
type DuplicateSeatError struct {
    JourneyID uint64
    Cargo     uint32
    Seat      uint32
}

func (e *DuplicateSeatError) Error() string {
    return fmt.Sprintf("seat %d in cargo %d on journey %d is requested more than once", e.Seat, e.Cargo, e.JourneyID)
}

// SeatTakenError reports a commit-time collision: another transaction
// already sold the seat and the store's uniqueness constraint rejected
// the insert.  The whole booking rolls back; the caller may resubmit
// with different seats.
type SeatTakenError struct {
    JourneyID uint64
    Cargo     uint32
    Seat      uint32
}

func (e *SeatTakenError) Error() string {
    return fmt.Sprintf("seat %d in cargo %d on journey %d is already taken", e.Seat, e.Cargo, e.JourneyID)
}
