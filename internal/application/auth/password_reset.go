package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

const (
	// La respuesta es la misma exista o no la cuenta.
	forgotPasswordMessage = "Nëse email-i ekziston, ne do t'ju dërgojmë një link për të rivendosur fjalëkalimin."
	resetPasswordMessage  = "Fjalëkalimi u rivendos me sukses! Tani mund të hyni me fjalëkalimin tuaj të ri."

	resetPagePath     = "/reset-password-sq.html"
	defaultResetTTL   = time.Hour
	resetTokenEntropy = 32
)

// ResetConfig enlace público de la página de recuperación y vigencia del token.
type ResetConfig struct {
	PublicURL string
	TTL       time.Duration
}

// PasswordResetUseCase recuperación de contraseña por email.
type PasswordResetUseCase struct {
	users    repository.UserRepository
	resets   repository.PasswordResetRepository
	notifier ports.Notifier
	cfg      ResetConfig
	log      zerolog.Logger
	hashCost int
	now      func() time.Time
}

// NewPasswordResetUseCase construye el caso de uso. TTL <= 0 usa una hora.
func NewPasswordResetUseCase(users repository.UserRepository, resets repository.PasswordResetRepository, notifier ports.Notifier, cfg ResetConfig, log zerolog.Logger) *PasswordResetUseCase {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultResetTTL
	}
	return &PasswordResetUseCase{
		users:    users,
		resets:   resets,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// WithHashCost cambia el costo bcrypt (tests).
func (uc *PasswordResetUseCase) WithHashCost(cost int) *PasswordResetUseCase {
	uc.hashCost = cost
	return uc
}

// WithClock reloj inyectable (tests de caducidad).
func (uc *PasswordResetUseCase) WithClock(now func() time.Time) *PasswordResetUseCase {
	uc.now = now
	return uc
}

// ForgotPassword emite un token nuevo y envía el enlace. Solo los errores de forma llegan al caller:
// cuenta inexistente y fallos internos responden igual que el caso feliz y se quedan en los logs.
func (uc *PasswordResetUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ok := &dto.MessageResponse{Success: true, Message: forgotPasswordMessage}

	email := usecase.NormalizeEmail(in.Email)
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Msg("recuperación: búsqueda de usuario")
		return ok, nil
	}
	if user == nil {
		uc.log.Debug().Msg("recuperación pedida para un email sin cuenta")
		return ok, nil
	}

	raw, err := newResetToken()
	if err != nil {
		uc.log.Error().Err(err).Msg("recuperación: generar token")
		return ok, nil
	}
	now := uc.now()
	token := &entity.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: hashResetToken(raw),
		ExpiresAt: now.Add(uc.cfg.TTL),
		CreatedAt: now,
	}
	if err := uc.resets.Issue(ctx, token); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("recuperación: guardar token")
		return ok, nil
	}

	uc.log.Info().Str("user_id", user.ID).Time("expires_at", token.ExpiresAt).Msg("token de recuperación emitido")
	uc.notifier.Notify(notify.PasswordResetEmail(user.Email, uc.resetLink(raw, user.Email), uc.cfg.TTL))
	return ok, nil
}

// ResetPassword canjea el token y fija la contraseña nueva. Email desconocido, token ajeno,
// usado o caducado devuelven el mismo ErrInvalidResetToken.
func (uc *PasswordResetUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, usecase.NormalizeEmail(in.Email))
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if user == nil {
		return nil, domain.ErrInvalidResetToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, domain.StorageError(fmt.Errorf("hash password: %w", err))
	}
	if err := uc.resets.Redeem(ctx, user.ID, hashResetToken(in.Token), string(hash), uc.now()); err != nil {
		return nil, domain.StorageError(err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return &dto.MessageResponse{Success: true, Message: resetPasswordMessage}, nil
}

func (uc *PasswordResetUseCase) resetLink(token, email string) string {
	base := strings.TrimRight(uc.cfg.PublicURL, "/")
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return base + resetPagePath + "?" + q.Encode()
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
