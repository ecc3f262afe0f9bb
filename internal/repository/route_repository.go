package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrRouteNotFound is returned when a route lookup fails.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides persistence for routes.
type RouteRepo struct {
    db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// StationPart is the embedded station shape used in route and journey
// responses.
type StationPart struct {
    ID        uint64  `json:"id"`
    Name      string  `json:"name"`
    Latitude  float64 `json:"latitude"`
    Longitude float64 `json:"longitude"`
}

// RouteDetail is a route with both endpoint stations resolved.  It is
// returned by list and detail queries for display.
type RouteDetail struct {
    ID          uint64      `json:"id"`
    Source      StationPart `json:"source"`
    Destination StationPart `json:"destination"`
    Distance    uint32      `json:"distance"`
}

// Create inserts a new route.  A missing source or destination station
// surfaces as ErrStationNotFound via the foreign key check.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
    if err != nil {
        if isForeignKeyMissing(err) {
            return ErrStationNotFound
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    return nil
}

// GetByID returns a route with its stations resolved, or
// ErrRouteNotFound.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteDetail, error) {
    const q = `SELECT r.id, r.distance,
                      src.id, src.name, src.latitude, src.longitude,
                      dst.id, dst.name, dst.latitude, dst.longitude
               FROM routes r
               JOIN stations src ON src.id = r.source_id
               JOIN stations dst ON dst.id = r.destination_id
               WHERE r.id = ?`
    var d RouteDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.Distance,
        &d.Source.ID, &d.Source.Name, &d.Source.Latitude, &d.Source.Longitude,
        &d.Destination.ID, &d.Destination.Name, &d.Destination.Latitude, &d.Destination.Longitude,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRouteNotFound
        }
        return nil, err
    }
    return &d, nil
}

// List returns all routes with their stations resolved.
func (r *RouteRepo) List(ctx context.Context) ([]RouteDetail, error) {
    const q = `SELECT r.id, r.distance,
                      src.id, src.name, src.latitude, src.longitude,
                      dst.id, dst.name, dst.latitude, dst.longitude
               FROM routes r
               JOIN stations src ON src.id = r.source_id
               JOIN stations dst ON dst.id = r.destination_id
               ORDER BY r.id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]RouteDetail, 0)
    for rows.Next() {
        var d RouteDetail
        if err := rows.Scan(
            &d.ID, &d.Distance,
            &d.Source.ID, &d.Source.Name, &d.Source.Latitude, &d.Source.Longitude,
            &d.Destination.ID, &d.Destination.Name, &d.Destination.Latitude, &d.Destination.Longitude,
        ); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// Update overwrites a route's endpoints and distance.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
    const q = `UPDATE routes SET source_id = ?, destination_id = ?, distance = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
    if err != nil {
        if isForeignKeyMissing(err) {
            return ErrStationNotFound
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        if _, err := r.GetByID(ctx, rt.ID); err != nil {
            return err
        }
    }
    return nil
}
