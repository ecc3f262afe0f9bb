package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh token hashes.  Raw tokens never reach the
// database; callers hash them first (utils.HashRefreshRaw), so a leaked
// table cannot be replayed.  Expiry and revocation are both checked in
// SQL, keeping the validity predicate in one place.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo constructs a TokenRepo with the given DB handle.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a new refresh token hash for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, exp.UTC())
	return err
}

// ValidateRefresh resolves a token hash to its owning user.  Revoked,
// expired and unknown tokens all come back as sql.ErrNoRows so callers
// cannot distinguish them.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	const q = `SELECT user_id FROM refresh_tokens
	           WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`
	var userID uint64
	if err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID); err != nil {
		return 0, err
	}
	return userID, nil
}

// Rotate atomically retires oldHash and stores newHash for the same
// user.  Used by the refresh endpoint so a crash between the two steps
// can never leave the user with both tokens valid or with neither.
func (r *TokenRepo) Rotate(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const revokeQ = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	                 WHERE token_hash = ? AND revoked_at IS NULL`
	if _, err := tx.ExecContext(ctx, revokeQ, oldHash); err != nil {
		_ = tx.Rollback()
		return err
	}
	const insertQ = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQ, userID, newHash, exp.UTC()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// RevokeByHash retires a single session.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	           WHERE token_hash = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, tokenHash)
	return err
}

// RevokeAllForUser retires every active session of a user, used by
// logout and after password changes.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	           WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
