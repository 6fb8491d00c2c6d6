package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// AdminAccount cuenta ADMIN que el seed garantiza. Sin password no se crea.
type AdminAccount struct {
	Email    string
	Password string
}

// SeedReport resumen de una ejecución.
type SeedReport struct {
	Cities       int
	Categories   int
	Services     int
	AdminCreated bool
}

// Seeder carga el catálogo por nombre. Es idempotente: ejecutarlo de nuevo no duplica filas.
type Seeder struct {
	writer   repository.DirectoryWriter
	users    repository.UserRepository
	log      zerolog.Logger
	hashCost int
}

// NewSeeder construye el seeder.
func NewSeeder(writer repository.DirectoryWriter, users repository.UserRepository, log zerolog.Logger) *Seeder {
	return &Seeder{writer: writer, users: users, log: log, hashCost: bcrypt.DefaultCost}
}

// Seed carga ciudades, categorías y servicios y asegura la cuenta admin.
// Una cuenta existente con ese email se deja como está.
func (s *Seeder) Seed(ctx context.Context, catalog Catalog, admin AdminAccount) (*SeedReport, error) {
	rep := &SeedReport{}
	for _, name := range catalog.Cities {
		if _, err := s.writer.UpsertCity(ctx, name); err != nil {
			return nil, fmt.Errorf("seed city %q: %w", name, err)
		}
		rep.Cities++
	}
	for _, cs := range catalog.Categories {
		cat := &entity.ServiceCategory{Name: cs.Name, Description: optional(cs.Description), Icon: optional(cs.Icon), Order: cs.Order}
		if err := s.writer.UpsertCategory(ctx, cat); err != nil {
			return nil, fmt.Errorf("seed category %q: %w", cs.Name, err)
		}
		rep.Categories++
		for _, ss := range cs.Services {
			catID := cat.ID
			svc := &entity.Service{Name: ss.Name, Description: optional(ss.Description), CategoryID: &catID}
			if err := s.writer.UpsertService(ctx, svc); err != nil {
				return nil, fmt.Errorf("seed service %q: %w", ss.Name, err)
			}
			rep.Services++
		}
	}

	created, err := s.ensureAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	rep.AdminCreated = created

	s.log.Info().
		Int("cities", rep.Cities).
		Int("categories", rep.Categories).
		Int("services", rep.Services).
		Bool("admin_created", rep.AdminCreated).
		Msg("catálogo cargado")
	return rep, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, admin AdminAccount) (bool, error) {
	email := usecase.NormalizeEmail(admin.Email)
	if email == "" {
		return false, nil
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	if admin.Password == "" {
		s.log.Warn().Str("email", email).Msg("SEED_ADMIN_PASSWORD vacío: no se crea la cuenta admin")
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), s.hashCost)
	if err != nil {
		return false, fmt.Errorf("seed admin hash: %w", err)
	}
	now := time.Now()
	if err := s.users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
