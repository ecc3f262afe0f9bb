package booking

import (
    "context"
    "errors"
)

// Validator checks a proposed batch of seat requests against the catalog
// before any transaction opens.  It is the single authoritative bounds
// check; nothing downstream re-validates cargo or seat numbers.
type Validator struct {
    catalog Catalog
}

// NewValidator returns a Validator backed by the given catalog.
func NewValidator(catalog Catalog) *Validator {
    if catalog == nil {
        panic("nil catalog passed to NewValidator")
    }
    return &Validator{catalog: catalog}
}

// Validate checks the batch and returns it wrapped in a ValidatedBatch.
// It fails with ErrEmptyBatch on an empty input, *DuplicateSeatError
// when two requests name the same seat, *UnknownJourneyError when a
// journey id is unknown, and *OutOfRangeError on the first cargo or
// seat outside the train's bounds.  The duplicate check is purely
// structural and runs before any catalog access: two identical seats in
// one request would never reach the store as independently conflicting
// rows, so rejecting early avoids a pointless transaction.  Validate
// performs no writes.
func (v *Validator) Validate(ctx context.Context, reqs []SeatRequest) (ValidatedBatch, error) {
    if len(reqs) == 0 {
        return ValidatedBatch{}, ErrEmptyBatch
    }

    seen := make(map[SeatRequest]struct{}, len(reqs))
    for _, r := range reqs {
        if _, dup := seen[r]; dup {
            return ValidatedBatch{}, &DuplicateSeatError{JourneyID: r.JourneyID, Cargo: r.Cargo, Seat: r.Seat}
        }
        seen[r] = struct{}{}
    }

    // Bounds are resolved once per distinct journey within the batch.
    bounds := make(map[uint64]TrainBounds)
    for _, r := range reqs {
        b, ok := bounds[r.JourneyID]
        if !ok {
            var err error
            b, err = v.catalog.TrainBounds(ctx, r.JourneyID)
            if err != nil {
                if errors.Is(err, ErrJourneyNotFound) {
                    return ValidatedBatch{}, &UnknownJourneyError{JourneyID: r.JourneyID}
                }
                return ValidatedBatch{}, err
            }
            bounds[r.JourneyID] = b
        }
        if r.Cargo < 1 || r.Cargo > b.CargoCount {
            return ValidatedBatch{}, &OutOfRangeError{Field: "cargo", Value: r.Cargo, Max: b.CargoCount}
        }
        if r.Seat < 1 || r.Seat > b.SeatsPerCargo {
            return ValidatedBatch{}, &OutOfRangeError{Field: "seat", Value: r.Seat, Max: b.SeatsPerCargo}
        }
    }

    return ValidatedBatch{requests: reqs}, nil
}
