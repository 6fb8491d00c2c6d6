package memory

import (
	"context"
	"time"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// PasswordResetRepo tokens de recuperación en memoria.
type PasswordResetRepo struct {
	v view
}

func (r *PasswordResetRepo) Issue(_ context.Context, token *entity.PasswordResetToken) error {
	return r.v.with("IssueResetToken", func(st *state) error {
		if _, ok := st.users[token.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		for id, t := range st.resetTokens {
			if t.UserID == token.UserID && !t.Used {
				delete(st.resetTokens, id)
			}
		}
		st.resetTokens[token.ID] = *token
		return nil
	})
}

func (r *PasswordResetRepo) Redeem(_ context.Context, userID, tokenHash, passwordHash string, now time.Time) error {
	return r.v.with("RedeemResetToken", func(st *state) error {
		for id, t := range st.resetTokens {
			if t.UserID != userID || t.TokenHash != tokenHash || !t.Redeemable(now) {
				continue
			}
			u, ok := st.users[userID]
			if !ok {
				return domain.ErrInvalidResetToken
			}
			used := now
			t.Used, t.UsedAt = true, &used
			st.resetTokens[id] = t
			u.PasswordHash = passwordHash
			u.UpdatedAt = now
			st.users[userID] = u
			return nil
		}
		return domain.ErrInvalidResetToken
	})
}

// ResetTokens tokens del usuario (tests).
func (r *PasswordResetRepo) ResetTokens(userID string) []entity.PasswordResetToken {
	var out []entity.PasswordResetToken
	_ = r.v.with("ResetTokens", func(st *state) error {
		for _, t := range st.resetTokens {
			if t.UserID == userID {
				out = append(out, t)
			}
		}
		return nil
	})
	return out
}
