package onboarding_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/onboarding"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/infrastructure/memory"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []ports.Email
}

func (f *fakeNotifier) Notify(msg ports.Email) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeRecorder struct {
	ports.NopRecorder
	mu       sync.Mutex
	outcomes []string
}

func (f *fakeRecorder) Onboarding(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, result)
}

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	recorder *fakeRecorder
	uc       *onboarding.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	dir := s.Directory()
	dir.PutCity(entity.City{ID: "city-1", Name: "Prishtinë"})
	dir.PutCity(entity.City{ID: "city-2", Name: "Prizren"})
	dir.PutService(entity.Service{ID: "svc-1", Name: "Pastrim shtëpie"})
	dir.PutService(entity.Service{ID: "svc-2", Name: "Pastrim zyre"})

	f := &fixture{store: s, notifier: &fakeNotifier{}, recorder: &fakeRecorder{}}
	f.uc = onboarding.NewUseCase(s, s.Users(), s.Companies(), dir, f.notifier, zerolog.Nop(),
		onboarding.WithHashCost(bcrypt.MinCost),
		onboarding.WithRecorder(f.recorder),
	)
	return f
}

func fullInput() onboarding.Input {
	return onboarding.Input{
		Identity:    onboarding.ByCredentials{Email: "a@x.com", Password: "secret1"},
		CompanyName: "CleanCo",
		Phone:       "044123456",
		Cities:      []string{"city-1"},
		Services:    []onboarding.ServiceOffer{{ServiceID: "svc-1", Price: decimal.NewFromInt(25)}},
	}
}

func (f *fixture) existingUser(t *testing.T, id, email, role string) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{ID: id, Email: email, Role: role}))
}

func TestOnboard_RegistroCompletoSeAutoAprueba(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.uc.Onboard(ctx, fullInput())
	require.NoError(t, err)
	assert.NotEmpty(t, res.UserID)
	assert.NotEmpty(t, res.CompanyID)
	assert.Equal(t, entity.StatusApproved, res.Status)

	c, err := f.store.Companies().GetByID(ctx, res.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, entity.StatusApproved, c.Status)
	assert.True(t, c.IsActive)
	assert.True(t, moderation.IsVisible(c))
	assert.Equal(t, res.UserID, c.UserID)

	u, err := f.store.Users().GetByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, u.Role)
	require.NotNil(t, u.CompanyName)
	assert.Equal(t, "CleanCo", *u.CompanyName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, notify.WelcomeEmail("a@x.com"), f.notifier.sent[0])
	assert.Equal(t, []string{"approved"}, f.recorder.outcomes)
}

func TestOnboard_SinServiciosQuedaPendiente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := fullInput()
	in.Services = nil

	res, err := f.uc.Onboard(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, res.Status)

	c, _ := f.store.Companies().GetByID(ctx, res.CompanyID)
	assert.Equal(t, entity.StatusPending, c.Status)
	assert.False(t, c.IsActive)
	assert.False(t, moderation.IsVisible(c))
}

func TestOnboard_DosCiudadesUnServicio(t *testing.T) {
	f := newFixture(t)
	in := fullInput()
	in.Cities = []string{"city-1", "city-2"}

	res, err := f.uc.Onboard(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, res.Status)
}

func TestOnboard_DeduplicaConservandoPrimeraAparicion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := fullInput()
	in.Cities = []string{"city-2", "city-1", "city-2"}
	in.Services = []onboarding.ServiceOffer{
		{ServiceID: "svc-1", Price: decimal.NewFromInt(25)},
		{ServiceID: "svc-2", Price: decimal.RequireFromString("12.50")},
		{ServiceID: "svc-1", Price: decimal.NewFromInt(99)},
	}

	res, err := f.uc.Onboard(ctx, in)
	require.NoError(t, err)

	cities, err := f.store.Companies().CityIDs(ctx, res.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, []string{"city-2", "city-1"}, cities)

	services, err := f.store.Companies().Services(ctx, res.CompanyID)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "svc-1", services[0].ServiceID)
	assert.True(t, decimal.NewFromInt(25).Equal(services[0].Price))
	assert.True(t, decimal.RequireFromString("12.5").Equal(services[1].Price))
}

func TestOnboard_UsuarioExistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.existingUser(t, "u-1", "owner@x.com", entity.RoleUser)

	in := fullInput()
	in.Identity = onboarding.ByExistingUser{UserID: "u-1"}
	res, err := f.uc.Onboard(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.UserID)

	u, _ := f.store.Users().GetByID(ctx, "u-1")
	assert.Equal(t, entity.RoleCompany, u.Role)
	assert.Equal(t, "owner@x.com", f.notifier.sent[0].To)

	// segundo intento del mismo usuario
	_, err = f.uc.Onboard(ctx, in)
	require.ErrorIs(t, err, domain.ErrCompanyAlreadyRegistered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	counts, _ := f.store.Companies().CountByStatus(ctx)
	assert.Equal(t, 1, counts[entity.StatusApproved]+counts[entity.StatusPending])
	assert.Equal(t, 1, f.notifier.count())
}

func TestOnboard_AdminConservaRol(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.existingUser(t, "u-admin", "admin@pastro.com", entity.RoleAdmin)

	in := fullInput()
	in.Identity = onboarding.ByExistingUser{UserID: "u-admin"}
	_, err := f.uc.Onboard(ctx, in)
	require.NoError(t, err)

	u, _ := f.store.Users().GetByID(ctx, "u-admin")
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestOnboard_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	in := fullInput()
	in.Identity = onboarding.ByExistingUser{UserID: "u-404"}

	_, err := f.uc.Onboard(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"not_found"}, f.recorder.outcomes)
}

func TestOnboard_EmailYaRegistrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("cuenta sin empresa", func(t *testing.T) {
		f.existingUser(t, "u-1", "a@x.com", entity.RoleUser)
		_, err := f.uc.Onboard(ctx, fullInput())
		assert.ErrorIs(t, err, domain.ErrAccountExists)
	})

	t.Run("cuenta con empresa", func(t *testing.T) {
		in := fullInput()
		in.Identity = onboarding.ByExistingUser{UserID: "u-1"}
		_, err := f.uc.Onboard(ctx, in)
		require.NoError(t, err)

		_, err = f.uc.Onboard(ctx, fullInput())
		assert.ErrorIs(t, err, domain.ErrCompanyExistsForEmail)
	})
}

func TestOnboard_EmailSeNormaliza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := fullInput()
	in.Identity = onboarding.ByCredentials{Email: "  A@X.com ", Password: "secret1"}

	res, err := f.uc.Onboard(ctx, in)
	require.NoError(t, err)
	u, _ := f.store.Users().GetByID(ctx, res.UserID)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestOnboard_Validacion(t *testing.T) {
	priced := func(price decimal.Decimal) func(*onboarding.Input) {
		return func(in *onboarding.Input) {
			in.Services = []onboarding.ServiceOffer{{ServiceID: "svc-1", Price: price}}
		}
	}
	cases := []struct {
		name   string
		mutate func(*onboarding.Input)
		field  string
	}{
		{
			name:   "sin identidad",
			mutate: func(in *onboarding.Input) { in.Identity = nil },
			field:  "email",
		},
		{
			name: "email inválido",
			mutate: func(in *onboarding.Input) {
				in.Identity = onboarding.ByCredentials{Email: "nope", Password: "secret1"}
			},
			field: "email",
		},
		{
			name: "password corto",
			mutate: func(in *onboarding.Input) {
				in.Identity = onboarding.ByCredentials{Email: "a@x.com", Password: "12345"}
			},
			field: "password",
		},
		{
			name:   "userId vacío",
			mutate: func(in *onboarding.Input) { in.Identity = onboarding.ByExistingUser{} },
			field:  "userId",
		},
		{
			name:   "nombre corto",
			mutate: func(in *onboarding.Input) { in.CompanyName = " C " },
			field:  "companyName",
		},
		{
			name:   "teléfono corto",
			mutate: func(in *onboarding.Input) { in.Phone = "044" },
			field:  "phone",
		},
		{
			name:   "ciudad vacía",
			mutate: func(in *onboarding.Input) { in.Cities = []string{""} },
			field:  "cities[0]",
		},
		{name: "precio cero", mutate: priced(decimal.Zero), field: "services[0].price"},
		{name: "precio negativo", mutate: priced(decimal.NewFromInt(-3)), field: "services[0].price"},
		{name: "precio por debajo del céntimo", mutate: priced(decimal.RequireFromString("0.004")), field: "services[0].price"},
		{name: "precio con tres decimales", mutate: priced(decimal.RequireFromString("25.555")), field: "services[0].price"},
		{name: "precio fuera de rango", mutate: priced(decimal.RequireFromString("123456789.00")), field: "services[0].price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := fullInput()
			tc.mutate(&in)

			_, err := f.uc.Onboard(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			fields := make([]string, 0, len(verr.Fields))
			for _, fe := range verr.Fields {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tc.field)
			assert.Zero(t, f.notifier.count())
		})
	}
}

func TestOnboard_PreciosAlmacenablesSinRedondeo(t *testing.T) {
	for _, price := range []string{"0.01", "25.50", "25.500", "99999999.99"} {
		t.Run(price, func(t *testing.T) {
			f := newFixture(t)
			in := fullInput()
			in.Services = []onboarding.ServiceOffer{{ServiceID: "svc-1", Price: decimal.RequireFromString(price)}}

			res, err := f.uc.Onboard(context.Background(), in)
			require.NoError(t, err)
			offered, err := f.store.Companies().Services(context.Background(), res.CompanyID)
			require.NoError(t, err)
			require.Len(t, offered, 1)
			assert.True(t, offered[0].Price.Equal(decimal.RequireFromString(price)))
		})
	}
}

func TestOnboard_ReferenciaDesconocida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := fullInput()
	in.Cities = []string{"city-1", "city-404"}

	_, err := f.uc.Onboard(ctx, in)
	require.ErrorIs(t, err, domain.ErrUnknownReference)
	assert.ErrorIs(t, err, domain.ErrValidation)

	u, _ := f.store.Users().GetByEmail(ctx, "a@x.com")
	assert.Nil(t, u, "no se abre la transacción")
}

func TestOnboard_FalloEnTransaccionRevierteUsuarioNuevo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.InjectFault("AddServices", errors.New("connection reset by peer"))

	_, err := f.uc.Onboard(ctx, fullInput())
	require.ErrorIs(t, err, domain.ErrStorage)

	u, _ := f.store.Users().GetByEmail(ctx, "a@x.com")
	assert.Nil(t, u, "el usuario creado en la misma unidad se revierte")
	counts, _ := f.store.Companies().CountByStatus(ctx)
	assert.Empty(t, counts)
	assert.Zero(t, f.notifier.count(), "sin commit no hay email")
	assert.Equal(t, []string{"error"}, f.recorder.outcomes)

	// reintento del cliente
	res, err := f.uc.Onboard(ctx, fullInput())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, res.Status)
}

func TestOnboard_FalloAlAprobarNoDejaEmpresaPendiente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.InjectFault("UpdateStatus", errors.New("deadlock detected"))

	_, err := f.uc.Onboard(ctx, fullInput())
	require.ErrorIs(t, err, domain.ErrStorage)
	counts, _ := f.store.Companies().CountByStatus(ctx)
	assert.Empty(t, counts)
}

func TestOnboard_ConcurrenteMismoEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Onboard(ctx, fullInput())
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
	counts, _ := f.store.Companies().CountByStatus(ctx)
	assert.Equal(t, 1, counts[entity.StatusApproved])
}

func TestOnboard_ConcurrenteMismoUsuario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.existingUser(t, "u-1", "owner@x.com", entity.RoleUser)
	in := fullInput()
	in.Identity = onboarding.ByExistingUser{UserID: "u-1"}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Onboard(ctx, in)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrCompanyAlreadyRegistered)
	}
	assert.Equal(t, 1, ok)
}
