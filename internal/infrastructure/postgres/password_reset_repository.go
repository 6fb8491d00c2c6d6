package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// Cada operación es una sola sentencia (CTE que modifica datos), atómica sin transacción explícita.
const (
	issueResetTokenSQL = `
		WITH purged AS (
			DELETE FROM password_reset_tokens WHERE user_id = $2 AND NOT used
		)
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, false, $5)`

	// La fila del token queda bloqueada por el UPDATE: un segundo canje concurrente
	// re-evalúa NOT used tras el commit del primero y no afecta filas.
	redeemResetTokenSQL = `
		WITH consumed AS (
			UPDATE password_reset_tokens SET used = true, used_at = $4
			WHERE user_id = $1 AND token_hash = $2 AND NOT used AND expires_at > $4
			RETURNING user_id
		)
		UPDATE users SET password_hash = $3, updated_at = $4
		FROM consumed
		WHERE users.id = consumed.user_id`
)

// PasswordResetRepo tokens de recuperación sobre PostgreSQL.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository construye el adaptador.
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

func (r *PasswordResetRepo) Issue(ctx context.Context, token *entity.PasswordResetToken) error {
	_, err := r.q.Exec(ctx, issueResetTokenSQL, token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

func (r *PasswordResetRepo) Redeem(ctx context.Context, userID, tokenHash, passwordHash string, now time.Time) error {
	tag, err := r.q.Exec(ctx, redeemResetTokenSQL, userID, tokenHash, passwordHash, now)
	if err != nil {
		return fmt.Errorf("redeem reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidResetToken
	}
	return nil
}
