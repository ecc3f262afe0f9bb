// Package repository contains the MySQL data access layer.  Each entity
// gets its own repository struct bound to a *sql.DB; methods suffixed Tx
// operate inside a caller-provided transaction.  Lookup failures use
// per-entity sentinel errors (or sql.ErrNoRows where the query already
// scopes ownership) so handlers can map them to HTTP statuses without
// inspecting SQL details.
package repository

import (
    "errors"
    "strings"
)

// ErrConflict is returned when an insert or update collides with an
// existing unique value, such as a station or train type name that is
// already taken.  Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicateEntry reports whether err is a MySQL duplicate-key error
// (ER_DUP_ENTRY, code 1062).
func isDuplicateEntry(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isForeignKeyMissing reports whether err is a MySQL foreign key failure
// on insert/update (ER_NO_REFERENCED_ROW_2, code 1452), meaning a
// referenced row does not exist.
func isForeignKeyMissing(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1452")
}
