package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
	"github.com/jhoicas/pastro-api/internal/infrastructure/memory"
)

// incoherentRepo simula una fila APPROVED sin flag que se coló en el filtro SQL.
type incoherentRepo struct {
	repository.CompanyRepository
	rows []*entity.CompanyDetail
}

func (r incoherentRepo) ListDetailed(context.Context, repository.CompanyFilter) ([]*entity.CompanyDetail, error) {
	return r.rows, nil
}

func TestListVisible(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.Directory().PutCity(entity.City{ID: "city-1", Name: "Gjakovë"})
	s.Directory().PutService(entity.Service{ID: "svc-1", Name: "Pastrim tepihash"})
	for i, st := range []entity.CompanyStatus{entity.StatusApproved, entity.StatusPending, entity.StatusRejected} {
		uid := []string{"u-1", "u-2", "u-3"}[i]
		cid := []string{"c-1", "c-2", "c-3"}[i]
		require.NoError(t, s.Users().Create(ctx, &entity.User{ID: uid, Email: uid + "@x.com"}))
		require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: cid, UserID: uid, Name: cid, Status: st, IsActive: st == entity.StatusApproved, CreatedAt: time.Now()}))
	}
	require.NoError(t, s.Companies().AddCities(ctx, "c-1", []string{"city-1"}))
	require.NoError(t, s.Companies().AddServices(ctx, "c-1", []entity.CompanyService{{ServiceID: "svc-1", Price: decimal.NewFromInt(40)}}))

	out, err := usecase.NewCompanyUseCase(s.Companies(), zerolog.Nop()).ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, out.Companies, 1)
	c := out.Companies[0]
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "u-1@x.com", c.Email)
	assert.Equal(t, []string{"Gjakovë"}, c.Cities)
	require.Len(t, c.Services, 1)
	assert.Equal(t, "Pastrim tepihash", c.Services[0].Name)
}

func TestListVisible_DescartaFilasIncoherentes(t *testing.T) {
	repo := incoherentRepo{rows: []*entity.CompanyDetail{
		{Company: entity.Company{ID: "ok", Status: entity.StatusApproved, IsActive: true}},
		{Company: entity.Company{ID: "bad", Status: entity.StatusApproved, IsActive: false}},
	}}
	out, err := usecase.NewCompanyUseCase(repo, zerolog.Nop()).ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Companies, 1)
	assert.Equal(t, "ok", out.Companies[0].ID)
}

func TestCheckUser(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := usecase.NewUserUseCase(s.Users(), s.Companies())

	out, err := uc.CheckUser(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, out.Exists)
	assert.Nil(t, out.User)

	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-1", Email: "a@x.com", Role: entity.RoleCompany, PasswordHash: "h"}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-1", UserID: "u-1", Name: "CleanCo", Phone: "044123456", Status: entity.StatusPending}))

	out, err = uc.CheckUser(ctx, " A@x.com")
	require.NoError(t, err)
	assert.True(t, out.Exists)
	assert.Equal(t, "u-1", out.User.ID)
	require.NotNil(t, out.Company)
	assert.Equal(t, "pending", out.Company.Status)

	_, err = uc.CheckUser(ctx, "no-es-email")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := usecase.NewUserUseCase(s.Users(), s.Companies())
	_, err := uc.GetByID(ctx, "u-404")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
