package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrTrainNotFound is returned when a train lookup fails.
var ErrTrainNotFound = errors.New("train not found")

// TrainRepo provides persistence for trains.
type TrainRepo struct {
    db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// TrainDetail is a train with its type name and derived capacity, used
// by list and detail responses.
type TrainDetail struct {
    ID            uint64 `json:"id"`
    Name          string `json:"name"`
    CargoNum      uint32 `json:"cargo_num"`
    PlacesInCargo uint32 `json:"places_in_cargo"`
    TrainTypeID   uint64 `json:"train_type"`
    TrainTypeName string `json:"train_type_name"`
    Capacity      uint32 `json:"capacity"`
}

// Create inserts a new train.  A missing train type surfaces as
// ErrTrainTypeNotFound via the foreign key check.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
    const q = `INSERT INTO trains (name, cargo_num, places_in_cargo, train_type_id) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID)
    if err != nil {
        if isForeignKeyMissing(err) {
            return ErrTrainTypeNotFound
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// GetByID returns a train with its type resolved, or ErrTrainNotFound.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*TrainDetail, error) {
    const q = `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.id, tt.name
               FROM trains t
               JOIN train_types tt ON tt.id = t.train_type_id
               WHERE t.id = ?`
    var d TrainDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.Name, &d.CargoNum, &d.PlacesInCargo, &d.TrainTypeID, &d.TrainTypeName,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTrainNotFound
        }
        return nil, err
    }
    d.Capacity = d.CargoNum * d.PlacesInCargo
    return &d, nil
}

// List returns all trains with their types resolved.  When typeID is
// non-zero the result is filtered to trains of that type.
func (r *TrainRepo) List(ctx context.Context, typeID uint64) ([]TrainDetail, error) {
    q := `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.id, tt.name
          FROM trains t
          JOIN train_types tt ON tt.id = t.train_type_id`
    args := make([]interface{}, 0, 1)
    if typeID != 0 {
        q += ` WHERE t.train_type_id = ?`
        args = append(args, typeID)
    }
    q += ` ORDER BY t.name`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    trains := make([]TrainDetail, 0)
    for rows.Next() {
        var d TrainDetail
        if err := rows.Scan(&d.ID, &d.Name, &d.CargoNum, &d.PlacesInCargo, &d.TrainTypeID, &d.TrainTypeName); err != nil {
            return nil, err
        }
        d.Capacity = d.CargoNum * d.PlacesInCargo
        trains = append(trains, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return trains, nil
}

// Update overwrites a train's fields.
func (r *TrainRepo) Update(ctx context.Context, t *model.Train) error {
    const q = `UPDATE trains SET name = ?, cargo_num = ?, places_in_cargo = ?, train_type_id = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID, t.ID)
    if err != nil {
        if isForeignKeyMissing(err) {
            return ErrTrainTypeNotFound
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        if _, err := r.GetByID(ctx, t.ID); err != nil {
            return err
        }
    }
    return nil
}
