// Package onboarding registra una empresa (y, si hace falta, su usuario dueño) en una sola transacción.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

const (
	minPasswordLen    = 6
	minCompanyNameLen = 2
	minPhoneLen       = 8

	// company_services.price es NUMERIC(10, 2)
	priceScale = 2
)

var maxPrice = decimal.New(1, 8)

// Identity quién registra la empresa: ByExistingUser o ByCredentials.
type Identity interface {
	isIdentity()
}

// ByExistingUser usuario ya autenticado.
type ByExistingUser struct {
	UserID string
}

// ByCredentials cuenta nueva con email y password.
type ByCredentials struct {
	Email    string
	Password string
}

func (ByExistingUser) isIdentity() {}
func (ByCredentials) isIdentity()  {}

// ServiceOffer servicio ofrecido con su precio en EUR.
type ServiceOffer struct {
	ServiceID string
	Price     decimal.Decimal
}

// Input datos del registro. Cities y Services pueden traer duplicados: se conserva la primera aparición.
type Input struct {
	Identity    Identity
	CompanyName string
	Phone       string
	Description string
	Cities      []string
	Services    []ServiceOffer
}

// Result salida de Onboard.
type Result struct {
	UserID    string
	CompanyID string
	Status    entity.CompanyStatus
}

// UseCase coordinador del registro de empresas.
type UseCase struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	companies repository.CompanyRepository
	directory repository.DirectoryReader
	notifier  ports.Notifier
	recorder  ports.Recorder
	log       zerolog.Logger
	now       func() time.Time
	hashCost  int
}

// Option ajusta el UseCase.
type Option func(*UseCase)

// WithRecorder registra métricas de cada intento.
func WithRecorder(r ports.Recorder) Option {
	return func(uc *UseCase) { uc.recorder = r }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithHashCost costo bcrypt; los tests usan bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(uc *UseCase) { uc.hashCost = cost }
}

// NewUseCase construye el coordinador. users/companies/directory se usan para las
// comprobaciones previas fuera de la transacción.
func NewUseCase(
	tx ports.TxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	directory repository.DirectoryReader,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		tx:        tx,
		users:     users,
		companies: companies,
		directory: directory,
		notifier:  notifier,
		recorder:  ports.NopRecorder{},
		log:       log,
		now:       time.Now,
		hashCost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// resolved usuario actuante antes de abrir la transacción.
type resolved struct {
	existing *entity.User // nil si hay que crear la cuenta
	newUser  *entity.User
}

// Onboard valida, resuelve el usuario y crea empresa + asociaciones (+ usuario nuevo) en una transacción.
// La auto-aprobación se decide dentro de la misma transacción. El email de bienvenida sale después del commit.
func (uc *UseCase) Onboard(ctx context.Context, in Input) (*Result, error) {
	res, err := uc.onboard(ctx, in)
	uc.recorder.Onboarding(outcome(res, err))
	return res, err
}

func (uc *UseCase) onboard(ctx context.Context, in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	cities := dedupeCities(in.Cities)
	services := dedupeServices(in.Services)

	if err := uc.checkReferences(ctx, cities, services); err != nil {
		return nil, err
	}
	who, err := uc.resolve(ctx, in.Identity)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.CompanyName),
		Phone:       strings.TrimSpace(in.Phone),
		Description: strings.TrimSpace(in.Description),
		Status:      entity.StatusPending,
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var owner *entity.User
	err = uc.tx.Run(ctx, func(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) error {
		if who.newUser != nil {
			if err := userRepo.Create(ctx, who.newUser); err != nil {
				return err
			}
			owner = who.newUser
		} else {
			// releer dentro de la tx: el rol pudo cambiar desde la comprobación previa
			u, err := userRepo.GetByID(ctx, who.existing.ID)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrUserNotFound
			}
			owner = u
		}

		company.UserID = owner.ID
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		if len(cities) > 0 {
			if err := companyRepo.AddCities(ctx, company.ID, cities); err != nil {
				return err
			}
		}
		if len(services) > 0 {
			rows := make([]entity.CompanyService, 0, len(services))
			for _, s := range services {
				rows = append(rows, entity.CompanyService{CompanyID: company.ID, ServiceID: s.ServiceID, Price: s.Price})
			}
			if err := companyRepo.AddServices(ctx, company.ID, rows); err != nil {
				return err
			}
		}

		owner.PromoteToCompany(company.Name, now)
		if err := userRepo.Update(ctx, owner); err != nil {
			return err
		}

		if moderation.ShouldAutoApprove(len(cities), len(services)) {
			changed, err := moderation.Apply(company, entity.StatusApproved, now)
			if err != nil {
				return err
			}
			if changed {
				if err := companyRepo.UpdateStatus(ctx, company.ID, company.Status, company.UpdatedAt); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("company_name", company.Name).Msg("registro de empresa revertido")
		return nil, domain.StorageError(err)
	}

	uc.log.Info().
		Str("company_id", company.ID).
		Str("user_id", owner.ID).
		Str("status", string(company.Status)).
		Int("cities", len(cities)).
		Int("services", len(services)).
		Msg("empresa registrada")

	uc.notifier.Notify(notify.WelcomeEmail(owner.Email))

	return &Result{UserID: owner.ID, CompanyID: company.ID, Status: company.Status}, nil
}

// resolve aplica las reglas de conflicto antes de abrir la transacción.
// Los índices únicos (email, companies.user_id) siguen siendo el punto de serialización.
func (uc *UseCase) resolve(ctx context.Context, id Identity) (resolved, error) {
	switch v := id.(type) {
	case ByExistingUser:
		u, err := uc.users.GetByID(ctx, v.UserID)
		if err != nil {
			return resolved{}, domain.StorageError(err)
		}
		if u == nil {
			return resolved{}, domain.ErrUserNotFound
		}
		c, err := uc.companies.GetByUserID(ctx, u.ID)
		if err != nil {
			return resolved{}, domain.StorageError(err)
		}
		if c != nil {
			return resolved{}, domain.ErrCompanyAlreadyRegistered
		}
		return resolved{existing: u}, nil

	case ByCredentials:
		email := usecase.NormalizeEmail(v.Email)
		u, err := uc.users.GetByEmail(ctx, email)
		if err != nil {
			return resolved{}, domain.StorageError(err)
		}
		if u != nil {
			c, err := uc.companies.GetByUserID(ctx, u.ID)
			if err != nil {
				return resolved{}, domain.StorageError(err)
			}
			if c != nil {
				return resolved{}, domain.ErrCompanyExistsForEmail
			}
			return resolved{}, domain.ErrAccountExists
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(v.Password), uc.hashCost)
		if err != nil {
			return resolved{}, domain.StorageError(fmt.Errorf("hash password: %w", err))
		}
		now := uc.now()
		return resolved{newUser: &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Role:         entity.RoleCompany,
			CreatedAt:    now,
			UpdatedAt:    now,
		}}, nil
	}
	return resolved{}, missingIdentity()
}

// checkReferences detecta ciudades o servicios inexistentes antes de abrir la transacción.
func (uc *UseCase) checkReferences(ctx context.Context, cities []string, services []ServiceOffer) error {
	if len(cities) > 0 {
		missing, err := uc.directory.MissingCityIDs(ctx, cities)
		if err != nil {
			return domain.StorageError(err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: cities %s", domain.ErrUnknownReference, strings.Join(missing, ", "))
		}
	}
	if len(services) > 0 {
		ids := make([]string, 0, len(services))
		for _, s := range services {
			ids = append(ids, s.ServiceID)
		}
		missing, err := uc.directory.MissingServiceIDs(ctx, ids)
		if err != nil {
			return domain.StorageError(err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: services %s", domain.ErrUnknownReference, strings.Join(missing, ", "))
		}
	}
	return nil
}

func validate(in Input) error {
	verr := &domain.ValidationError{}
	switch v := in.Identity.(type) {
	case ByExistingUser:
		if strings.TrimSpace(v.UserID) == "" {
			verr.Add("userId", "required")
		}
	case ByCredentials:
		if !validEmail(v.Email) {
			verr.Add("email", "email")
		}
		if utf8.RuneCountInString(v.Password) < minPasswordLen {
			verr.Add("password", fmt.Sprintf("min=%d", minPasswordLen))
		}
	default:
		return missingIdentity()
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.CompanyName)) < minCompanyNameLen {
		verr.Add("companyName", fmt.Sprintf("min=%d", minCompanyNameLen))
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Phone)) < minPhoneLen {
		verr.Add("phone", fmt.Sprintf("min=%d", minPhoneLen))
	}
	for i, c := range in.Cities {
		if strings.TrimSpace(c) == "" {
			verr.Add(fmt.Sprintf("cities[%d]", i), "required")
		}
	}
	for i, s := range in.Services {
		if strings.TrimSpace(s.ServiceID) == "" {
			verr.Add(fmt.Sprintf("services[%d].serviceId", i), "required")
		}
		switch {
		case !s.Price.IsPositive():
			verr.Add(fmt.Sprintf("services[%d].price", i), "gt=0")
		case s.Price.Exponent() < -priceScale && !s.Price.Equal(s.Price.Truncate(priceScale)):
			verr.Add(fmt.Sprintf("services[%d].price", i), fmt.Sprintf("decimals=%d", priceScale))
		case s.Price.GreaterThanOrEqual(maxPrice):
			verr.Add(fmt.Sprintf("services[%d].price", i), "lt="+maxPrice.String())
		}
	}
	return verr.OrNil()
}

func missingIdentity() error {
	verr := &domain.ValidationError{}
	verr.Add("email", "required")
	verr.Add("password", "required")
	return verr
}

var checker = validator.New()

func validEmail(s string) bool {
	return checker.Var(strings.TrimSpace(s), "required,email") == nil
}

func dedupeCities(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupeServices(offers []ServiceOffer) []ServiceOffer {
	seen := make(map[string]struct{}, len(offers))
	out := make([]ServiceOffer, 0, len(offers))
	for _, o := range offers {
		o.ServiceID = strings.TrimSpace(o.ServiceID)
		if _, ok := seen[o.ServiceID]; ok {
			continue
		}
		seen[o.ServiceID] = struct{}{}
		out = append(out, o)
	}
	return out
}

func outcome(res *Result, err error) string {
	switch {
	case err == nil:
		return res.Status.Lower()
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "error"
}
