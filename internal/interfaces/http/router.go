package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/auth"
	"github.com/jhoicas/pastro-api/internal/application/contact"
	"github.com/jhoicas/pastro-api/internal/application/directory"
	"github.com/jhoicas/pastro-api/internal/application/moderation"
	"github.com/jhoicas/pastro-api/internal/application/onboarding"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/naming"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Onboarding      *onboarding.UseCase
	AuthUC          *auth.AuthUseCase
	PasswordResetUC *auth.PasswordResetUseCase
	UserUC          *usecase.UserUseCase
	CompanyUC       *usecase.CompanyUseCase
	DirectoryUC     *directory.UseCase
	ModerationUC    *moderation.UseCase
	ContactUC       *contact.UseCase
	Naming          *naming.Verifier
	JWTSecret       string
	InternalToken   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	verifier := deps.Naming
	if verifier == nil {
		verifier = naming.Default()
	}
	api := app.Group("/api")

	// Auth (público; el registro de empresa acepta token opcional)
	authGroup := api.Group("/auth")
	onboardingHandler := NewOnboardingHandler(deps.Onboarding, verifier)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), onboardingHandler.Register)
	authGroup.Post("/register-user", authHandler.RegisterUser)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/oauth", InternalToken(deps.InternalToken), authHandler.OAuth)
	passwordHandler := NewPasswordHandler(deps.PasswordResetUC)
	authGroup.Post("/forgot-password", passwordHandler.ForgotPassword)
	authGroup.Post("/reset-password", passwordHandler.ResetPassword)

	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/users/check", userHandler.Check)

	companyHandler := NewCompanyHandler(deps.CompanyUC, verifier)
	api.Post("/company/verify", companyHandler.VerifyName)
	api.Get("/companies", companyHandler.List)

	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	api.Get("/cities", directoryHandler.Cities)
	api.Get("/services", directoryHandler.Services)
	api.Get("/service-categories", directoryHandler.Categories)

	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Send)

	// Moderación (Bearer + ADMIN)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.ModerationUC)
	admin.Get("/companies", adminHandler.ListCompanies)
	admin.Put("/companies/:id/status", adminHandler.UpdateStatus)
}
