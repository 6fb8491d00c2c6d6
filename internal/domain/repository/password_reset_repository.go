package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
)

// PasswordResetRepository tokens de recuperación de contraseña.
type PasswordResetRepository interface {
	// Issue descarta los tokens sin usar del usuario y guarda el nuevo.
	Issue(ctx context.Context, token *entity.PasswordResetToken) error
	// Redeem marca como usado el token vigente (userID, tokenHash) y fija passwordHash en la misma operación.
	// Devuelve domain.ErrInvalidResetToken si no hay token canjeable.
	Redeem(ctx context.Context, userID, tokenHash, passwordHash string, now time.Time) error
}
