package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/rpk6432/train-station-api/internal/booking"
    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrJourneyNotFound is returned when a journey lookup fails.
var ErrJourneyNotFound = errors.New("journey not found")

// JourneyRepo provides persistence for journeys and their crew
// assignments.  It also implements booking.Catalog: the booking core
// resolves train bounds through TrainBounds without knowing about this
// package.
type JourneyRepo struct {
    db *sql.DB
}

// NewJourneyRepo constructs a JourneyRepo with the given DB handle.
func NewJourneyRepo(db *sql.DB) *JourneyRepo { return &JourneyRepo{db: db} }

// CrewPart is the crew shape embedded in journey responses.
type CrewPart struct {
    ID       uint64 `json:"id"`
    FullName string `json:"full_name"`
}

// SeatPart identifies one sold seat on a journey.
type SeatPart struct {
    Cargo uint32 `json:"cargo"`
    Seat  uint32 `json:"seat"`
}

// JourneySummary is the journey shape returned by list queries.  Route
// is a display string; TicketsAvailable is capacity minus sold tickets,
// computed in the same statement that counts the tickets so the value
// is consistent with concurrently committed bookings (it is advisory
// either way, not a reservation).
type JourneySummary struct {
    ID               uint64    `json:"id"`
    Route            string    `json:"route"`
    TrainName        string    `json:"train_name"`
    DepartureTime    time.Time `json:"departure_time"`
    ArrivalTime      time.Time `json:"arrival_time"`
    Capacity         uint32    `json:"train_capacity"`
    TicketsAvailable uint32    `json:"tickets_available"`
}

// JourneyDetail extends the summary with the full route, train, crew
// and the list of already sold seats.
type JourneyDetail struct {
    ID               uint64      `json:"id"`
    Route            RouteDetail `json:"route"`
    Train            TrainDetail `json:"train"`
    Crew             []CrewPart  `json:"crew"`
    DepartureTime    time.Time   `json:"departure_time"`
    ArrivalTime      time.Time   `json:"arrival_time"`
    TicketsAvailable uint32      `json:"tickets_available"`
    TakenSeats       []SeatPart  `json:"taken_seats"`
}

// JourneyFilter narrows List results.  Zero values mean "no filter".
type JourneyFilter struct {
    SourceID      uint64     // filter by route source station
    DestinationID uint64     // filter by route destination station
    Date          *time.Time // filter by departure date (UTC day)
}

// Create inserts a journey and its crew links in one transaction.  A
// missing route or train surfaces as ErrRouteNotFound/ErrTrainNotFound;
// a missing crew member as ErrCrewNotFound.
func (r *JourneyRepo) Create(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO journeys (route_id, train_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC())
    if err != nil {
        if isForeignKeyMissing(err) {
            return journeyRefError(ctx, r.db, j)
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    j.ID = uint64(id)

    if err := replaceCrewTx(ctx, tx, j.ID, crewIDs); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// journeyRefError decides which referenced entity was missing when a
// journey insert hits a foreign key failure.
func journeyRefError(ctx context.Context, db *sql.DB, j *model.Journey) error {
    var one int
    if err := db.QueryRowContext(ctx, `SELECT 1 FROM routes WHERE id = ?`, j.RouteID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
        return ErrRouteNotFound
    }
    return ErrTrainNotFound
}

// replaceCrewTx rewrites the journey_crew links for a journey inside the
// given transaction.
func replaceCrewTx(ctx context.Context, tx *sql.Tx, journeyID uint64, crewIDs []uint64) error {
    if _, err := tx.ExecContext(ctx, `DELETE FROM journey_crew WHERE journey_id = ?`, journeyID); err != nil {
        return err
    }
    for _, cid := range crewIDs {
        if _, err := tx.ExecContext(ctx, `INSERT INTO journey_crew (journey_id, crew_id) VALUES (?, ?)`, journeyID, cid); err != nil {
            if isForeignKeyMissing(err) {
                return ErrCrewNotFound
            }
            return err
        }
    }
    return nil
}

// List returns journey summaries with availability, newest departure
// last.  The optional filter narrows by route endpoints and departure
// date.
func (r *JourneyRepo) List(ctx context.Context, f JourneyFilter) ([]JourneySummary, error) {
    q := `SELECT j.id, CONCAT(src.name, ' -> ', dst.name), t.name,
                 j.departure_time, j.arrival_time,
                 t.cargo_num * t.places_in_cargo,
                 GREATEST(CAST(t.cargo_num * t.places_in_cargo AS SIGNED) - COUNT(tk.id), 0)
          FROM journeys j
          JOIN routes r ON r.id = j.route_id
          JOIN stations src ON src.id = r.source_id
          JOIN stations dst ON dst.id = r.destination_id
          JOIN trains t ON t.id = j.train_id
          LEFT JOIN tickets tk ON tk.journey_id = j.id`
    where := ``
    args := make([]interface{}, 0, 3)
    addCond := func(cond string, arg interface{}) {
        if where == "" {
            where = " WHERE " + cond
        } else {
            where += " AND " + cond
        }
        args = append(args, arg)
    }
    if f.SourceID != 0 {
        addCond("r.source_id = ?", f.SourceID)
    }
    if f.DestinationID != 0 {
        addCond("r.destination_id = ?", f.DestinationID)
    }
    if f.Date != nil {
        addCond("DATE(j.departure_time) = ?", f.Date.UTC().Format("2006-01-02"))
    }
    q += where
    q += ` GROUP BY j.id, src.name, dst.name, t.name, j.departure_time, j.arrival_time, t.cargo_num, t.places_in_cargo
           ORDER BY j.departure_time`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    summaries := make([]JourneySummary, 0)
    for rows.Next() {
        var s JourneySummary
        if err := rows.Scan(
            &s.ID, &s.Route, &s.TrainName,
            &s.DepartureTime, &s.ArrivalTime,
            &s.Capacity, &s.TicketsAvailable,
        ); err != nil {
            return nil, err
        }
        summaries = append(summaries, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return summaries, nil
}

// GetByID returns a journey with route, train, crew, availability and
// the seats already sold.  It returns ErrJourneyNotFound when the
// journey does not exist.
func (r *JourneyRepo) GetByID(ctx context.Context, id uint64) (*JourneyDetail, error) {
    const q = `SELECT j.id, j.departure_time, j.arrival_time,
                      r.id, r.distance,
                      src.id, src.name, src.latitude, src.longitude,
                      dst.id, dst.name, dst.latitude, dst.longitude,
                      t.id, t.name, t.cargo_num, t.places_in_cargo, tt.id, tt.name
               FROM journeys j
               JOIN routes r ON r.id = j.route_id
               JOIN stations src ON src.id = r.source_id
               JOIN stations dst ON dst.id = r.destination_id
               JOIN trains t ON t.id = j.train_id
               JOIN train_types tt ON tt.id = t.train_type_id
               WHERE j.id = ?`
    var d JourneyDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.DepartureTime, &d.ArrivalTime,
        &d.Route.ID, &d.Route.Distance,
        &d.Route.Source.ID, &d.Route.Source.Name, &d.Route.Source.Latitude, &d.Route.Source.Longitude,
        &d.Route.Destination.ID, &d.Route.Destination.Name, &d.Route.Destination.Latitude, &d.Route.Destination.Longitude,
        &d.Train.ID, &d.Train.Name, &d.Train.CargoNum, &d.Train.PlacesInCargo, &d.Train.TrainTypeID, &d.Train.TrainTypeName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrJourneyNotFound
        }
        return nil, err
    }
    d.Train.Capacity = d.Train.CargoNum * d.Train.PlacesInCargo

    // Crew assigned to the journey, deterministic order.
    const crewQ = `SELECT c.id, CONCAT(c.first_name, ' ', c.last_name)
                   FROM journey_crew jc
                   JOIN crews c ON c.id = jc.crew_id
                   WHERE jc.journey_id = ?
                   ORDER BY c.last_name, c.first_name`
    crewRows, err := r.db.QueryContext(ctx, crewQ, id)
    if err != nil {
        return nil, err
    }
    defer crewRows.Close()
    d.Crew = make([]CrewPart, 0)
    for crewRows.Next() {
        var c CrewPart
        if err := crewRows.Scan(&c.ID, &c.FullName); err != nil {
            return nil, err
        }
        d.Crew = append(d.Crew, c)
    }
    if err := crewRows.Err(); err != nil {
        return nil, err
    }

    // Sold seats ordered by cargo then seat, as the catalog displays them.
    const seatQ = `SELECT cargo, seat FROM tickets WHERE journey_id = ? ORDER BY cargo, seat`
    seatRows, err := r.db.QueryContext(ctx, seatQ, id)
    if err != nil {
        return nil, err
    }
    defer seatRows.Close()
    d.TakenSeats = make([]SeatPart, 0)
    for seatRows.Next() {
        var s SeatPart
        if err := seatRows.Scan(&s.Cargo, &s.Seat); err != nil {
            return nil, err
        }
        d.TakenSeats = append(d.TakenSeats, s)
    }
    if err := seatRows.Err(); err != nil {
        return nil, err
    }
    d.TicketsAvailable = availableSeats(d.Train.Capacity, len(d.TakenSeats))
    return &d, nil
}

// availableSeats clamps capacity minus sold at zero.  A train may be
// shrunk below the number of tickets already sold; the journey then
// simply has no seats left, it never reports a wrapped-around count.
// The List query applies the same clamp in SQL via GREATEST over a
// signed subtraction.
func availableSeats(capacity uint32, sold int) uint32 {
    if sold < 0 || uint32(sold) >= capacity {
        return 0
    }
    return capacity - uint32(sold)
}

// Update overwrites a journey's schedule and crew links in one
// transaction.
func (r *JourneyRepo) Update(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `UPDATE journeys SET route_id = ?, train_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC(), j.ID)
    if err != nil {
        if isForeignKeyMissing(err) {
            return journeyRefError(ctx, r.db, j)
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var one int
        if err := tx.QueryRowContext(ctx, `SELECT 1 FROM journeys WHERE id = ?`, j.ID).Scan(&one); errors.Is(err, sql.ErrNoRows) {
            return ErrJourneyNotFound
        }
    }
    if err := replaceCrewTx(ctx, tx, j.ID, crewIDs); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// TrainBounds implements booking.Catalog.  It resolves the capacity of
// the train operating the journey and reports
// booking.ErrJourneyNotFound for unknown ids.
func (r *JourneyRepo) TrainBounds(ctx context.Context, journeyID uint64) (booking.TrainBounds, error) {
    const q = `SELECT t.cargo_num, t.places_in_cargo
               FROM journeys j
               JOIN trains t ON t.id = j.train_id
               WHERE j.id = ?`
    var b booking.TrainBounds
    err := r.db.QueryRowContext(ctx, q, journeyID).Scan(&b.CargoCount, &b.SeatsPerCargo)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return booking.TrainBounds{}, booking.ErrJourneyNotFound
        }
        return booking.TrainBounds{}, err
    }
    return b, nil
}
