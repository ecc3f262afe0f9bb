package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/booking"
	"github.com/rpk6432/train-station-api/internal/handler"
	"github.com/rpk6432/train-station-api/internal/queue"
	"github.com/rpk6432/train-station-api/internal/repository"
)

type fakeBooking struct {
	orderID uint64
	err     error
	gotUser uint64
	gotReqs []booking.SeatRequest
}

func (f *fakeBooking) Book(_ context.Context, userID uint64, reqs []booking.SeatRequest) (uint64, error) {
	f.gotUser = userID
	f.gotReqs = reqs
	if f.err != nil {
		return 0, f.err
	}
	return f.orderID, nil
}

type fakeOrders struct {
	summaries []repository.OrderSummary
	detail    *repository.OrderDetail
	detailErr error
	gotDate   *time.Time
}

func (f *fakeOrders) ListByUser(_ context.Context, _ uint64, date *time.Time) ([]repository.OrderSummary, error) {
	f.gotDate = date
	return f.summaries, nil
}

func (f *fakeOrders) GetByIDForUser(_ context.Context, _, _ uint64) (*repository.OrderDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func newOrderContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(7)) // numeric JWT claims decode as float64
	return c, rec
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("should return 201 with order detail on success", func(t *testing.T) {
		b := &fakeBooking{orderID: 12}
		o := &fakeOrders{detail: &repository.OrderDetail{ID: 12, CreatedAt: time.Now()}}
		published := make(chan queue.OrderCreatedEvent, 1)
		h := handler.NewOrderHandler(b, o, func(_ context.Context, ev queue.OrderCreatedEvent) error {
			published <- ev
			return nil
		})

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":1,"cargo":2,"seat":3},{"journey":1,"cargo":2,"seat":4}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.EqualValues(t, 7, b.gotUser)
		require.Len(t, b.gotReqs, 2)
		assert.Equal(t, booking.SeatRequest{JourneyID: 1, Cargo: 2, Seat: 3}, b.gotReqs[0])

		var resp repository.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 12, resp.ID)

		select {
		case ev := <-published:
			assert.EqualValues(t, 12, ev.OrderID)
			assert.Equal(t, 2, ev.TicketCount)
		case <-time.After(time.Second):
			t.Fatal("expected order.created event to be published")
		}
	})

	t.Run("should reject an empty batch with 400", func(t *testing.T) {
		b := &fakeBooking{err: booking.ErrEmptyBatch}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders", `{"tickets":[]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least one ticket")
	})

	t.Run("should reject an out-of-range cargo with 400 and a bounds message", func(t *testing.T) {
		b := &fakeBooking{err: &booking.OutOfRangeError{Field: "cargo", Value: 11, Max: 10}}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":1,"cargo":11,"seat":3}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cargo number must be between 1 and 10")
	})

	t.Run("should reject an unknown journey with 400", func(t *testing.T) {
		b := &fakeBooking{err: &booking.UnknownJourneyError{JourneyID: 42}}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":42,"cargo":1,"seat":1}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "journey 42 does not exist")
	})

	t.Run("should reject a duplicate seat in the batch with 400", func(t *testing.T) {
		b := &fakeBooking{err: &booking.DuplicateSeatError{JourneyID: 1, Cargo: 2, Seat: 3}}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":1,"cargo":2,"seat":3},{"journey":1,"cargo":2,"seat":3}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "requested more than once")
	})

	t.Run("should report a seat collision with 400 naming the seat", func(t *testing.T) {
		b := &fakeBooking{err: &booking.SeatTakenError{JourneyID: 1, Cargo: 2, Seat: 3}}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":1,"cargo":2,"seat":3}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "seat 3 in cargo 2 on journey 1 is already taken")
	})

	t.Run("should return 500 on unexpected store failure", func(t *testing.T) {
		b := &fakeBooking{err: context.DeadlineExceeded}
		h := handler.NewOrderHandler(b, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodPost, "/v1/orders",
			`{"tickets":[{"journey":1,"cargo":1,"seat":1}]}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("should pass the parsed date filter through", func(t *testing.T) {
		o := &fakeOrders{summaries: []repository.OrderSummary{{ID: 1, TicketsCount: 2}}}
		h := handler.NewOrderHandler(&fakeBooking{}, o, nil)

		c, rec := newOrderContext(t, http.MethodGet, "/v1/orders?date=2026-08-01", "")
		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, o.gotDate)
		assert.Equal(t, "2026-08-01", o.gotDate.Format("2006-01-02"))
	})

	t.Run("should reject a malformed date filter", func(t *testing.T) {
		h := handler.NewOrderHandler(&fakeBooking{}, &fakeOrders{}, nil)

		c, rec := newOrderContext(t, http.MethodGet, "/v1/orders?date=01-08-2026", "")
		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("should hide another user's order behind 404", func(t *testing.T) {
		o := &fakeOrders{detailErr: sql.ErrNoRows}
		h := handler.NewOrderHandler(&fakeBooking{}, o, nil)

		c, rec := newOrderContext(t, http.MethodGet, "/v1/orders/9", "")
		c.SetParamNames("id")
		c.SetParamValues("9")
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "order not found")
	})

	t.Run("should return the order detail for the owner", func(t *testing.T) {
		o := &fakeOrders{detail: &repository.OrderDetail{
			ID:      9,
			Tickets: []repository.TicketPart{{Cargo: 1, Seat: 5, JourneyID: 2}},
		}}
		h := handler.NewOrderHandler(&fakeBooking{}, o, nil)

		c, rec := newOrderContext(t, http.MethodGet, "/v1/orders/9", "")
		c.SetParamNames("id")
		c.SetParamValues("9")
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp repository.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Tickets, 1)
		assert.EqualValues(t, 5, resp.Tickets[0].Seat)
	})
}
