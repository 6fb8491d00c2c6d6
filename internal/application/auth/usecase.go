package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
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
	"github.com/jhoicas/pastro-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: alta de cliente, login y alta/login por proveedor OAuth.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	notifier    ports.Notifier
	jwtCfg      JWTConfig
	log         zerolog.Logger
	hashCost    int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, notifier ports.Notifier, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, notifier: notifier, jwtCfg: jwtCfg, log: log, hashCost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo bcrypt (tests).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// RegisterUser crea una cuenta de cliente (rol USER). Devuelve ErrAccountExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	email := usecase.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if existing != nil {
		return nil, domain.ErrAccountExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, domain.StorageError(fmt.Errorf("hash password: %w", err))
	}
	user := newUser(email, string(hash), in.Name)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.StorageError(err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	uc.notifier.Notify(notify.WelcomeEmail(user.Email))
	return usecase.UserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, usecase.NormalizeEmail(in.Email))
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(ctx, user)
}

// OAuthSignIn recibe un email ya verificado por el proveedor. Si no existe la cuenta la crea
// como USER con un hash aleatorio que nunca sirve para autenticar por password.
func (uc *AuthUseCase) OAuthSignIn(ctx context.Context, in dto.OAuthSignInRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	email := usecase.NormalizeEmail(in.Email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if user == nil {
		hash, err := placeholderHash(uc.hashCost)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		created := newUser(email, hash, in.Name)
		switch err := uc.userRepo.Create(ctx, created); {
		case err == nil:
			user = created
			uc.log.Info().Str("user_id", user.ID).Str("provider", in.Provider).Msg("usuario creado por OAuth")
		case errors.Is(err, domain.ErrAccountExists):
			// otro inicio de sesión simultáneo creó la cuenta
			if user, err = uc.userRepo.GetByEmail(ctx, email); err != nil {
				return nil, domain.StorageError(err)
			}
			if user == nil {
				return nil, domain.ErrAccountExists
			}
		default:
			return nil, domain.StorageError(err)
		}
	}
	return uc.issue(ctx, user)
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	id := jwt.Identity{UserID: user.ID, Role: user.Role}
	company, err := uc.companyRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if company != nil {
		id.CompanyID = company.ID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, id, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return &dto.LoginResponse{Token: token, User: *usecase.UserResponse(user)}, nil
}

func newUser(email, hash, name string) *entity.User {
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.FirstName, u.LastName, u.FullName = SplitName(name)
	return u
}

// SplitName primera palabra como nombre, el resto como apellido.
func SplitName(name string) (first, last, full *string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return nil, nil, nil
	}
	f := parts[0]
	all := strings.Join(parts, " ")
	first, full = &f, &all
	if len(parts) > 1 {
		l := strings.Join(parts[1:], " ")
		last = &l
	}
	return first, last, full
}

func placeholderHash(cost int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
