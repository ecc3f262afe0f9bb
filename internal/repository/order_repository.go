package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/rpk6432/train-station-api/internal/booking"
)

// OrderRepo provides persistence for orders and tickets.  It implements
// booking.Store: the booking core drives order creation through Begin
// and the returned transaction, and the tickets table's uq_ticket_seat
// index turns a concurrent double-booking into a duplicate-key error
// that surfaces as *booking.SeatTakenError.  Read methods scope every
// query to the calling user, so a foreign order is indistinguishable
// from a missing one (sql.ErrNoRows either way).
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo constructs an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Begin opens a booking transaction.  Implements booking.Store.
func (r *OrderRepo) Begin(ctx context.Context) (booking.Tx, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    return &orderTx{tx: tx}, nil
}

// orderTx adapts *sql.Tx to booking.Tx.
type orderTx struct {
    tx *sql.Tx
}

// InsertOrder creates the order row and returns its generated id.
func (t *orderTx) InsertOrder(ctx context.Context, userID uint64) (uint64, error) {
    res, err := t.tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// InsertTicket creates one ticket row.  A duplicate-key rejection from
// uq_ticket_seat means another committed order already holds the seat;
// it is reported as *booking.SeatTakenError so the whole transaction
// rolls back upstream.
func (t *orderTx) InsertTicket(ctx context.Context, orderID uint64, req booking.SeatRequest) error {
    const q = `INSERT INTO tickets (cargo, seat, journey_id, order_id) VALUES (?, ?, ?, ?)`
    if _, err := t.tx.ExecContext(ctx, q, req.Cargo, req.Seat, req.JourneyID, orderID); err != nil {
        if isDuplicateEntry(err) {
            return &booking.SeatTakenError{JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
        }
        return err
    }
    return nil
}

func (t *orderTx) Commit() error   { return t.tx.Commit() }
func (t *orderTx) Rollback() error { return t.tx.Rollback() }

// OrderSummary is the order shape returned by list queries.
type OrderSummary struct {
    ID           uint64    `json:"id"`
    TicketsCount uint32    `json:"tickets_count"`
    CreatedAt    time.Time `json:"created_at"`
}

// TicketPart is a ticket with its journey resolved for display.
type TicketPart struct {
    ID            uint64    `json:"id"`
    Cargo         uint32    `json:"cargo"`
    Seat          uint32    `json:"seat"`
    JourneyID     uint64    `json:"journey"`
    Route         string    `json:"route"`
    TrainName     string    `json:"train_name"`
    DepartureTime time.Time `json:"departure_time"`
    ArrivalTime   time.Time `json:"arrival_time"`
}

// OrderDetail is an order with its tickets resolved.
type OrderDetail struct {
    ID        uint64       `json:"id"`
    CreatedAt time.Time    `json:"created_at"`
    Tickets   []TicketPart `json:"tickets"`
}

// ListByUser returns the user's orders newest first.  When date is
// non-nil only orders created on that UTC day are returned.  Reads are
// plain queries; listing twice without intervening writes yields
// identical results.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, date *time.Time) ([]OrderSummary, error) {
    q := `SELECT o.id, COUNT(t.id), o.created_at
          FROM orders o
          LEFT JOIN tickets t ON t.order_id = o.id
          WHERE o.user_id = ?`
    args := []interface{}{userID}
    if date != nil {
        q += ` AND DATE(o.created_at) = ?`
        args = append(args, date.UTC().Format("2006-01-02"))
    }
    q += ` GROUP BY o.id, o.created_at ORDER BY o.created_at DESC, o.id DESC`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    summaries := make([]OrderSummary, 0)
    for rows.Next() {
        var s OrderSummary
        if err := rows.Scan(&s.ID, &s.TicketsCount, &s.CreatedAt); err != nil {
            return nil, err
        }
        summaries = append(summaries, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return summaries, nil
}

// GetByIDForUser returns a single order with tickets for the given
// user.  Ownership is enforced in the query itself: when the order does
// not exist or belongs to someone else, sql.ErrNoRows is returned and
// the handler answers 404 without leaking existence.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderDetail, error) {
    const q = `SELECT id, created_at FROM orders WHERE id = ? AND user_id = ?`
    var d OrderDetail
    if err := r.db.QueryRowContext(ctx, q, orderID, userID).Scan(&d.ID, &d.CreatedAt); err != nil {
        return nil, err
    }

    const ticketQ = `SELECT t.id, t.cargo, t.seat, t.journey_id,
                            CONCAT(src.name, ' -> ', dst.name), tr.name,
                            j.departure_time, j.arrival_time
                     FROM tickets t
                     JOIN journeys j ON j.id = t.journey_id
                     JOIN routes r ON r.id = j.route_id
                     JOIN stations src ON src.id = r.source_id
                     JOIN stations dst ON dst.id = r.destination_id
                     JOIN trains tr ON tr.id = j.train_id
                     WHERE t.order_id = ?
                     ORDER BY t.cargo, t.seat`
    rows, err := r.db.QueryContext(ctx, ticketQ, d.ID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    d.Tickets = make([]TicketPart, 0)
    for rows.Next() {
        var t TicketPart
        if err := rows.Scan(
            &t.ID, &t.Cargo, &t.Seat, &t.JourneyID,
            &t.Route, &t.TrainName,
            &t.DepartureTime, &t.ArrivalTime,
        ); err != nil {
            return nil, err
        }
        d.Tickets = append(d.Tickets, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}
