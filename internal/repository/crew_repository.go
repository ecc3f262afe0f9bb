package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/rpk6432/train-station-api/internal/model"
)

// ErrCrewNotFound is returned when a crew member lookup fails.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo provides persistence for crew members.
type CrewRepo struct {
    db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a new crew member.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
    const q = `INSERT INTO crews (first_name, last_name) VALUES (?, ?)`
    res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}

// GetByID returns a crew member or ErrCrewNotFound.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
    const q = `SELECT id, first_name, last_name FROM crews WHERE id = ?`
    var c model.Crew
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCrewNotFound
        }
        return nil, err
    }
    return &c, nil
}

// List returns all crew members ordered by last then first name.
func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
    const q = `SELECT id, first_name, last_name FROM crews ORDER BY last_name, first_name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    crews := make([]model.Crew, 0)
    for rows.Next() {
        var c model.Crew
        if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
            return nil, err
        }
        crews = append(crews, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return crews, nil
}

// Update overwrites a crew member's names.
func (r *CrewRepo) Update(ctx context.Context, c *model.Crew) error {
    const q = `UPDATE crews SET first_name = ?, last_name = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.ID)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        if _, err := r.GetByID(ctx, c.ID); err != nil {
            return err
        }
    }
    return nil
}
