package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrStationNotFound is returned when a station lookup fails.
var ErrStationNotFound = errors.New("station not found")

// StationRepo provides persistence for stations.
type StationRepo struct {
    db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// Create inserts a new station and assigns the generated ID back to the
// struct.  A name collision returns ErrConflict.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
    const q = `INSERT INTO stations (name, latitude, longitude) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// GetByID retrieves a station by its ID.  It returns ErrStationNotFound
// when no row exists.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
    const q = `SELECT id, name, latitude, longitude FROM stations WHERE id = ?`
    var s model.Station
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrStationNotFound
        }
        return nil, err
    }
    return &s, nil
}

// List returns all stations ordered by name.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
    const q = `SELECT id, name, latitude, longitude FROM stations ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stations := make([]model.Station, 0)
    for rows.Next() {
        var s model.Station
        if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
            return nil, err
        }
        stations = append(stations, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return stations, nil
}

// Update overwrites a station's fields.  It returns ErrStationNotFound
// when the station does not exist and ErrConflict on a name collision.
func (r *StationRepo) Update(ctx context.Context, s *model.Station) error {
    const q = `UPDATE stations SET name = ?, latitude = ?, longitude = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude, s.ID)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        // Either the row is missing or the values did not change;
        // distinguish with a lookup so callers get a clean 404.
        if _, err := r.GetByID(ctx, s.ID); err != nil {
            return err
        }
    }
    return nil
}
