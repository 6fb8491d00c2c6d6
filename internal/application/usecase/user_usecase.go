package usecase

import (
	"context"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// UserUseCase consulta de cuentas.
type UserUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(users repository.UserRepository, companies repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{users: users, companies: companies}
}

// CheckUser indica si existe una cuenta con ese email y, si la tiene, su empresa.
func (uc *UserUseCase) CheckUser(ctx context.Context, email string) (*dto.CheckUserResponse, error) {
	email = NormalizeEmail(email)
	if err := dto.Validate(struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if u == nil {
		return &dto.CheckUserResponse{Exists: false}, nil
	}
	out := &dto.CheckUserResponse{Exists: true, User: UserResponse(u)}
	c, err := uc.companies.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if c != nil {
		out.Company = &dto.CompanySummary{ID: c.ID, Name: c.Name, Status: c.Status.Lower(), Phone: c.Phone}
	}
	return out, nil
}

// GetByID perfil de un usuario; ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return UserResponse(u), nil
}

// UserResponse salida de un usuario sin el hash.
func UserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		CreatedAt:   u.CreatedAt,
	}
}
