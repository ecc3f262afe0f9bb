package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/booking"
)

// fakeCatalog serves train bounds from a map, standing in for the
// journey repository.
type fakeCatalog struct {
	journeys map[uint64]booking.TrainBounds
}

func (f *fakeCatalog) TrainBounds(_ context.Context, journeyID uint64) (booking.TrainBounds, error) {
	b, ok := f.journeys[journeyID]
	if !ok {
		return booking.TrainBounds{}, booking.ErrJourneyNotFound
	}
	return b, nil
}

// tenByFifty matches the reference train used throughout: 10 cargos of
// 50 seats each on journey 1.
func tenByFifty() *fakeCatalog {
	return &fakeCatalog{journeys: map[uint64]booking.TrainBounds{
		1: {CargoCount: 10, SeatsPerCargo: 50},
	}}
}

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept a batch within bounds and keep submission order", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())
		reqs := []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 2},
			{JourneyID: 1, Cargo: 10, Seat: 50},
		}

		batch, err := v.Validate(ctx, reqs)
		require.NoError(t, err)
		assert.Equal(t, reqs, batch.Requests())
	})

	t.Run("should reject an empty batch", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())

		_, err := v.Validate(ctx, nil)
		assert.ErrorIs(t, err, booking.ErrEmptyBatch)
	})

	t.Run("should reject an unknown journey", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())

		_, err := v.Validate(ctx, []booking.SeatRequest{{JourneyID: 42, Cargo: 1, Seat: 1}})
		var unknown *booking.UnknownJourneyError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, uint64(42), unknown.JourneyID)
	})

	t.Run("should reject cargo zero", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())

		_, err := v.Validate(ctx, []booking.SeatRequest{{JourneyID: 1, Cargo: 0, Seat: 1}})
		var oor *booking.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, "cargo", oor.Field)
		assert.Equal(t, uint32(0), oor.Value)
		assert.Equal(t, uint32(10), oor.Max)
	})

	t.Run("should reject cargo above the train's cargo count", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())

		_, err := v.Validate(ctx, []booking.SeatRequest{{JourneyID: 1, Cargo: 11, Seat: 1}})
		var oor *booking.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, "cargo", oor.Field)
	})

	t.Run("should reject seat above places in cargo", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())

		_, err := v.Validate(ctx, []booking.SeatRequest{{JourneyID: 1, Cargo: 1, Seat: 999}})
		var oor *booking.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, "seat", oor.Field)
		assert.Equal(t, uint32(999), oor.Value)
		assert.Equal(t, uint32(50), oor.Max)
	})

	t.Run("should reject a duplicate seat within the batch", func(t *testing.T) {
		v := booking.NewValidator(tenByFifty())
		reqs := []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 1},
		}

		_, err := v.Validate(ctx, reqs)
		var dup *booking.DuplicateSeatError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, uint64(1), dup.JourneyID)
		assert.Equal(t, uint32(1), dup.Cargo)
		assert.Equal(t, uint32(1), dup.Seat)
	})

	t.Run("should reject duplicates without touching the catalog", func(t *testing.T) {
		// An empty catalog would fail any lookup, proving the duplicate
		// check is purely structural.
		v := booking.NewValidator(&fakeCatalog{journeys: map[uint64]booking.TrainBounds{}})
		reqs := []booking.SeatRequest{
			{JourneyID: 7, Cargo: 2, Seat: 3},
			{JourneyID: 7, Cargo: 2, Seat: 3},
		}

		_, err := v.Validate(ctx, reqs)
		var dup *booking.DuplicateSeatError
		assert.ErrorAs(t, err, &dup)
	})

	t.Run("should allow the same seat number on different journeys", func(t *testing.T) {
		catalog := &fakeCatalog{journeys: map[uint64]booking.TrainBounds{
			1: {CargoCount: 10, SeatsPerCargo: 50},
			2: {CargoCount: 10, SeatsPerCargo: 50},
		}}
		v := booking.NewValidator(catalog)
		reqs := []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 2, Cargo: 1, Seat: 1},
		}

		_, err := v.Validate(ctx, reqs)
		assert.NoError(t, err)
	})

	t.Run("should propagate unexpected catalog errors", func(t *testing.T) {
		boom := errors.New("catalog down")
		v := booking.NewValidator(&errCatalog{err: boom})

		_, err := v.Validate(ctx, []booking.SeatRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		assert.ErrorIs(t, err, boom)
	})
}

// errCatalog always fails, simulating an unreachable catalog service.
type errCatalog struct{ err error }

func (e *errCatalog) TrainBounds(context.Context, uint64) (booking.TrainBounds, error) {
	return booking.TrainBounds{}, e.err
}
