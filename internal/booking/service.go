package booking

import "context"

// Service is the booking transaction manager.  It validates a batch and
// persists the order with its tickets in one transaction.  Requests are
// handled independently; there is no shared in-memory state between
// concurrent bookings.  When two requests race for the same seat, the
// store's uniqueness constraint lets exactly one transaction commit and
// the other fails with *SeatTakenError after a full rollback.
type Service struct {
    validator *Validator
    store     Store
}

// NewService wires the booking core to a catalog and an order store.
func NewService(catalog Catalog, store Store) *Service {
    if store == nil {
        panic("nil store passed to NewService")
    }
    return &Service{validator: NewValidator(catalog), store: store}
}

// Book validates the requested seats and, on success, creates one order
// row owned by userID plus one ticket row per request, all inside a
// single transaction.  It returns the new order's id once the commit is
// durable.  A validation failure never opens a transaction; a failure
// inside the transaction (including a seat collision) rolls everything
// back and leaves no persisted state.  No retry is attempted on
// *SeatTakenError — seat choice stays with the caller.
func (s *Service) Book(ctx context.Context, userID uint64, reqs []SeatRequest) (uint64, error) {
    batch, err := s.validator.Validate(ctx, reqs)
    if err != nil {
        return 0, err
    }

    tx, err := s.store.Begin(ctx)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    orderID, err := tx.InsertOrder(ctx, userID)
    if err != nil {
        return 0, err
    }
    for _, r := range batch.Requests() {
        if err := tx.InsertTicket(ctx, orderID, r); err != nil {
            return 0, err
        }
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return orderID, nil
}
