package directory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/infrastructure/memory"
)

func testSeeder(s *memory.Store) *Seeder {
	seeder := NewSeeder(s.Directory(), s.Users(), zerolog.Nop())
	seeder.hashCost = bcrypt.MinCost
	return seeder
}

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	catalog := KosovoCatalog()
	admin := AdminAccount{Email: "admin@pastro.com", Password: "admin123"}

	first, err := testSeeder(s).Seed(ctx, catalog, admin)
	require.NoError(t, err)
	assert.Equal(t, 31, first.Cities)
	assert.Equal(t, 6, first.Categories)
	assert.Equal(t, 25, first.Services)
	assert.True(t, first.AdminCreated)

	second, err := testSeeder(s).Seed(ctx, catalog, admin)
	require.NoError(t, err)
	assert.False(t, second.AdminCreated)

	uc := NewUseCase(s.Directory())
	cities, err := uc.ListCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities.Cities, 31)
	assert.Equal(t, "Artana", cities.Cities[0].Name)

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats.Categories, 6)
	assert.Equal(t, 1, cats.Categories[0].Order)
	assert.Equal(t, "Pastrime Shtëpiake / Rezidenciale", cats.Categories[0].Name)
	assert.Len(t, cats.Categories[0].Services, 5)

	u, err := s.Users().GetByEmail(ctx, "admin@pastro.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestSeed_NoTocaCuentaExistente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-1", Email: "admin@pastro.com", Role: entity.RoleUser}))

	rep, err := testSeeder(s).Seed(ctx, Catalog{}, AdminAccount{Email: "admin@pastro.com", Password: "x"})
	require.NoError(t, err)
	assert.False(t, rep.AdminCreated)
	u, _ := s.Users().GetByEmail(ctx, "admin@pastro.com")
	assert.Equal(t, entity.RoleUser, u.Role)
}

func TestSeed_SinPasswordNoCreaAdmin(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	rep, err := testSeeder(s).Seed(ctx, Catalog{Cities: []string{"Peja"}}, AdminAccount{Email: "admin@pastro.com"})
	require.NoError(t, err)
	assert.False(t, rep.AdminCreated)
	u, _ := s.Users().GetByEmail(ctx, "admin@pastro.com")
	assert.Nil(t, u)
}

func TestListServices_PorCategoria(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	_, err := testSeeder(s).Seed(ctx, KosovoCatalog(), AdminAccount{})
	require.NoError(t, err)
	uc := NewUseCase(s.Directory())

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	eco := cats.Categories[5]

	out, err := uc.ListServices(ctx, eco.ID, true)
	require.NoError(t, err)
	require.Len(t, out.Services, 3)
	for _, svc := range out.Services {
		require.NotNil(t, svc.Category)
		assert.Equal(t, "Pastrime Ekologjike", svc.Category.Name)
	}

	all, err := uc.ListServices(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all.Services, 25)
	assert.Nil(t, all.Services[0].Category)
}
