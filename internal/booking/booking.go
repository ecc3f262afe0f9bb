// Package booking implements the order booking core: validating a batch
// of seat requests against train capacity and persisting the order plus
// its tickets in one atomic transaction.  The package never talks to
// MySQL directly; it sees the catalog and the order store only through
// the Catalog and Store interfaces so the concurrency contract stays in
// one place and the logic is testable without a database.
package booking

import "context"

// SeatRequest identifies one seat a user wants to book.  Cargo and Seat
// are 1-based indexes into the journey's train.
type SeatRequest struct {
    JourneyID uint64 `json:"journey"`
    Cargo     uint32 `json:"cargo"`
    Seat      uint32 `json:"seat"`
}

// TrainBounds carries the capacity limits of the train operating a
// journey, as resolved by the catalog.
type TrainBounds struct {
    CargoCount    uint32 // number of cargos, valid cargo indexes are 1..CargoCount
    SeatsPerCargo uint32 // seats per cargo, valid seat indexes are 1..SeatsPerCargo
}

// Catalog resolves journey identifiers to train bounds.  Implementations
// return ErrJourneyNotFound when the journey does not exist.  The
// catalog is read-only from this package's point of view.
type Catalog interface {
    TrainBounds(ctx context.Context, journeyID uint64) (TrainBounds, error)
}

// ValidatedBatch is a batch of seat requests that passed validation.  It
// can only be obtained from Validator.Validate, which guarantees the
// batch is non-empty, within bounds and free of internal duplicates.
type ValidatedBatch struct {
    requests []SeatRequest
}

// Requests returns the validated seat requests in submission order.
func (b ValidatedBatch) Requests() []SeatRequest {
    return b.requests
}

// Store opens booking transactions.  The MySQL implementation lives in
// the repository package.
type Store interface {
    Begin(ctx context.Context) (Tx, error)
}

// Tx is a single all-or-nothing booking transaction.  InsertTicket must
// surface a *SeatTakenError when the store's uniqueness constraint on
// (journey, cargo, seat) rejects the row; the constraint, not this
// package, is the authority on seat collisions under concurrency.
type Tx interface {
    InsertOrder(ctx context.Context, userID uint64) (uint64, error)
    InsertTicket(ctx context.Context, orderID uint64, req SeatRequest) error
    Commit() error
    Rollback() error
}
