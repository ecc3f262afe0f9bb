package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/booking"
)

// memStore is an in-memory booking.Store with the same contract as the
// MySQL implementation: tickets become visible only on commit, and the
// commit of a seat that another transaction committed first fails with
// *booking.SeatTakenError.  The per-seat insert-if-absent check is
// atomic under the store mutex, mirroring the uq_ticket_seat index.
type memStore struct {
	mu         sync.Mutex
	nextOrder  uint64
	orders     map[uint64]uint64                   // order id -> user id
	sold       map[booking.SeatRequest]uint64      // committed seat -> order id
	beginCount int
}

func newMemStore() *memStore {
	return &memStore{
		orders: map[uint64]uint64{},
		sold:   map[booking.SeatRequest]uint64{},
	}
}

func (s *memStore) Begin(context.Context) (booking.Tx, error) {
	s.mu.Lock()
	s.beginCount++
	s.mu.Unlock()
	return &memTx{store: s}, nil
}

// ticketCount reports the number of committed tickets.
func (s *memStore) ticketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sold)
}

// orderCount reports the number of committed orders.
func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memTx struct {
	store   *memStore
	userID  uint64
	orderID uint64
	pending []booking.SeatRequest
	done    bool
}

func (t *memTx) InsertOrder(_ context.Context, userID uint64) (uint64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.nextOrder++
	t.orderID = t.store.nextOrder
	t.userID = userID
	return t.orderID, nil
}

func (t *memTx) InsertTicket(_ context.Context, orderID uint64, req booking.SeatRequest) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, taken := t.store.sold[req]; taken {
		return &booking.SeatTakenError{JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
	}
	_ = orderID
	t.pending = append(t.pending, req)
	return nil
}

func (t *memTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	// Re-check under the lock: a concurrent transaction may have
	// committed one of our seats after our insert succeeded.
	for _, req := range t.pending {
		if _, taken := t.store.sold[req]; taken {
			return &booking.SeatTakenError{JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
		}
	}
	t.store.orders[t.orderID] = t.userID
	for _, req := range t.pending {
		t.store.sold[req] = t.orderID
	}
	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	t.pending = nil
	return nil
}

func TestService_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("should create one order with one ticket per request", func(t *testing.T) {
		store := newMemStore()
		svc := booking.NewService(tenByFifty(), store)

		orderID, err := svc.Book(ctx, 7, []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 2},
		})
		require.NoError(t, err)
		assert.NotZero(t, orderID)
		assert.Equal(t, 1, store.orderCount())
		assert.Equal(t, 2, store.ticketCount())
	})

	t.Run("should never open a transaction when validation fails", func(t *testing.T) {
		store := newMemStore()
		svc := booking.NewService(tenByFifty(), store)

		_, err := svc.Book(ctx, 7, []booking.SeatRequest{{JourneyID: 1, Cargo: 0, Seat: 1}})
		var oor *booking.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Zero(t, store.beginCount)
		assert.Zero(t, store.orderCount())
		assert.Zero(t, store.ticketCount())
	})

	t.Run("should persist nothing when a batch contains a duplicate seat", func(t *testing.T) {
		store := newMemStore()
		svc := booking.NewService(tenByFifty(), store)

		_, err := svc.Book(ctx, 7, []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 1},
		})
		var dup *booking.DuplicateSeatError
		require.ErrorAs(t, err, &dup)
		assert.Zero(t, store.orderCount())
		assert.Zero(t, store.ticketCount())
	})

	t.Run("should fail with SeatTaken and roll back the order when a seat is sold", func(t *testing.T) {
		store := newMemStore()
		svc := booking.NewService(tenByFifty(), store)

		_, err := svc.Book(ctx, 1, []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 2},
		})
		require.NoError(t, err)

		// Second booking collides on cargo 1 seat 1; the whole batch,
		// including the fresh order row, must vanish.
		_, err = svc.Book(ctx, 2, []booking.SeatRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
		})
		var taken *booking.SeatTakenError
		require.ErrorAs(t, err, &taken)
		assert.Equal(t, uint64(1), taken.JourneyID)
		assert.Equal(t, uint32(1), taken.Cargo)
		assert.Equal(t, uint32(1), taken.Seat)
		assert.Equal(t, 1, store.orderCount())
		assert.Equal(t, 2, store.ticketCount())
	})

	t.Run("should propagate store failures without partial state", func(t *testing.T) {
		boom := errors.New("store down")
		svc := booking.NewService(tenByFifty(), failingStore{err: boom})

		_, err := svc.Book(ctx, 7, []booking.SeatRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("should let exactly one of many concurrent bookings win a seat", func(t *testing.T) {
		store := newMemStore()
		svc := booking.NewService(tenByFifty(), store)
		seat := []booking.SeatRequest{{JourneyID: 1, Cargo: 3, Seat: 17}}

		const attempts = 32
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Book(ctx, uint64(i+1), seat)
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			var taken *booking.SeatTakenError
			assert.ErrorAs(t, err, &taken)
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, store.ticketCount())
		assert.Equal(t, 1, store.orderCount())
	})
}

// failingStore refuses to open transactions.
type failingStore struct{ err error }

func (f failingStore) Begin(context.Context) (booking.Tx, error) { return nil, f.err }
