package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrTrainTypeNotFound is returned when a train type lookup fails.
var ErrTrainTypeNotFound = errors.New("train type not found")

// TrainTypeRepo provides persistence for train types.
type TrainTypeRepo struct {
    db *sql.DB
}

// NewTrainTypeRepo constructs a TrainTypeRepo with the given DB handle.
func NewTrainTypeRepo(db *sql.DB) *TrainTypeRepo { return &TrainTypeRepo{db: db} }

// Create inserts a new train type.  A name collision returns ErrConflict.
func (r *TrainTypeRepo) Create(ctx context.Context, tt *model.TrainType) error {
    const q = `INSERT INTO train_types (name) VALUES (?)`
    res, err := r.db.ExecContext(ctx, q, tt.Name)
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
    tt.ID = uint64(id)
    return nil
}

// GetByID returns a train type or ErrTrainTypeNotFound.
func (r *TrainTypeRepo) GetByID(ctx context.Context, id uint64) (*model.TrainType, error) {
    const q = `SELECT id, name FROM train_types WHERE id = ?`
    var tt model.TrainType
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&tt.ID, &tt.Name); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTrainTypeNotFound
        }
        return nil, err
    }
    return &tt, nil
}

// List returns all train types ordered by name.
func (r *TrainTypeRepo) List(ctx context.Context) ([]model.TrainType, error) {
    const q = `SELECT id, name FROM train_types ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    types := make([]model.TrainType, 0)
    for rows.Next() {
        var tt model.TrainType
        if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
            return nil, err
        }
        types = append(types, tt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return types, nil
}

// Update renames a train type.
func (r *TrainTypeRepo) Update(ctx context.Context, tt *model.TrainType) error {
    const q = `UPDATE train_types SET name = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, tt.Name, tt.ID)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        if _, err := r.GetByID(ctx, tt.ID); err != nil {
            return err
        }
    }
    return nil
}
