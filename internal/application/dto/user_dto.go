package dto

import "time"

// RegisterUserRequest alta de cliente (rol USER).
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,min=2,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthSignInRequest email ya verificado por el proveedor de identidad.
type OAuthSignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=200"`
	Provider string `json:"provider" validate:"omitempty,oneof=google facebook apple"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FirstName   *string   `json:"firstName,omitempty"`
	LastName    *string   `json:"lastName,omitempty"`
	FullName    *string   `json:"fullName,omitempty"`
	CompanyName *string   `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CompanySummary resumen de la empresa de un usuario.
type CompanySummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Phone  string `json:"phone"`
}

// CheckUserResponse consulta de existencia por email.
type CheckUserResponse struct {
	Exists  bool            `json:"exists"`
	User    *UserResponse   `json:"user,omitempty"`
	Company *CompanySummary `json:"company,omitempty"`
}

// ForgotPasswordRequest petición de enlace de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest canje del enlace de recuperación.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ContactRequest mensaje de un cliente a una empresa visible.
type ContactRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
	From      string `json:"from" validate:"required,email"`
	Message   string `json:"message" validate:"required,min=10,max=5000"`
}
