package entity

import "time"

// PasswordResetToken enlace de un solo uso para fijar una contraseña nueva.
// Solo se guarda el hash del token; el valor en claro viaja únicamente en el email.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Redeemable sin usar y sin caducar en now.
func (t PasswordResetToken) Redeemable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
