package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/booking"
	"github.com/rpk6432/train-station-api/internal/queue"
	"github.com/rpk6432/train-station-api/internal/repository"
)

// BookingService places an order for a batch of seats.  Implemented by
// *booking.Service.
type BookingService interface {
	Book(ctx context.Context, userID uint64, reqs []booking.SeatRequest) (uint64, error)
}

// OrderReader loads a user's own orders.  Implemented by
// *repository.OrderRepo.
type OrderReader interface {
	ListByUser(ctx context.Context, userID uint64, date *time.Time) ([]repository.OrderSummary, error)
	GetByIDForUser(ctx context.Context, orderID, userID uint64) (*repository.OrderDetail, error)
}

// OrderHandler serves the customer-facing order endpoints.  Publish is
// optional; when set, a created order is announced on the queue after
// the response is sent.
type OrderHandler struct {
	Booking BookingService
	Orders  OrderReader
	Publish func(ctx context.Context, ev queue.OrderCreatedEvent) error
}

func NewOrderHandler(b BookingService, o OrderReader, publish func(ctx context.Context, ev queue.OrderCreatedEvent) error) *OrderHandler {
	if b == nil || o == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Booking: b, Orders: o, Publish: publish}
}

type createOrderReq struct {
	Tickets []booking.SeatRequest `json:"tickets"`
}

// Create handles POST /v1/orders.  The whole batch books atomically:
// either every requested seat is sold to this user or none are.
func (h *OrderHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	orderID, err := h.Booking.Book(c.Request().Context(), uid, req.Tickets)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	detail, err := h.Orders.GetByIDForUser(c.Request().Context(), orderID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load order failed"})
	}

	if h.Publish != nil {
		ev := queue.OrderCreatedEvent{
			OrderID:     orderID,
			UserID:      uid,
			TicketCount: len(req.Tickets),
			CreatedAt:   detail.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, t := range req.Tickets {
			ev.Tickets = append(ev.Tickets, queue.TicketEvent{JourneyID: t.JourneyID, Cargo: t.Cargo, Seat: t.Seat})
		}
		// Fire and forget; a broker outage must not fail the booking.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Publish(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, detail)
}

// bookingErrorResponse maps booking failures onto HTTP statuses.  All
// validation problems and seat collisions are client errors; anything
// else is a 500.
func bookingErrorResponse(c echo.Context, err error) error {
	var (
		unknownJourney *booking.UnknownJourneyError
		outOfRange     *booking.OutOfRangeError
		dupSeat        *booking.DuplicateSeatError
		seatTaken      *booking.SeatTakenError
	)
	switch {
	case errors.Is(err, booking.ErrEmptyBatch):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrEmptyBatch.Error()})
	case errors.As(err, &unknownJourney):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": unknownJourney.Error()})
	case errors.As(err, &outOfRange):
		// Capitalized to match the field it names, e.g.
		// "Cargo number must be between 1 and 10, got 11".
		msg := outOfRange.Error()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.ToUpper(msg[:1]) + msg[1:]})
	case errors.As(err, &dupSeat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": dupSeat.Error()})
	case errors.As(err, &seatTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": seatTaken.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
}

// List handles GET /v1/orders with an optional ?date=YYYY-MM-DD filter.
// Only the authenticated user's orders are returned.
func (h *OrderHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var date *time.Time
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = &d
	}
	items, err := h.Orders.ListByUser(c.Request().Context(), uid, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Get handles GET /v1/orders/:id.  Another user's order is
// indistinguishable from a missing one: both return 404.
func (h *OrderHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	detail, err := h.Orders.GetByIDForUser(c.Request().Context(), id, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, detail)
}
