package model

import "time"

// User is an account that can authenticate and place orders.  Role is
// either ADMIN (may modify the catalog) or CUSTOMER.  Passwords are
// stored only as bcrypt hashes.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email (lowercased, unique)
    PasswordHash string    // users.password_hash
    Role         string    // users.role (ADMIN, CUSTOMER)
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
