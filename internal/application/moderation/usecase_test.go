package moderation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/moderation"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
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

type transitions struct {
	ports.NopRecorder
	got []string
}

func (r *transitions) StatusTransition(from, to string) { r.got = append(r.got, from+"->"+to) }

func setup(t *testing.T) (*memory.Store, *moderation.UseCase, *fakeNotifier, *transitions) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, st := range []entity.CompanyStatus{entity.StatusPending, entity.StatusPending, entity.StatusApproved} {
		uid := []string{"u-1", "u-2", "u-3"}[i]
		require.NoError(t, s.Users().Create(ctx, &entity.User{ID: uid, Email: uid + "@x.com", Role: entity.RoleCompany}))
		require.NoError(t, s.Companies().Create(ctx, &entity.Company{
			ID: []string{"c-1", "c-2", "c-3"}[i], UserID: uid, Name: "Company " + uid,
			Status: st, IsActive: st == entity.StatusApproved, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	n := &fakeNotifier{}
	rec := &transitions{}
	return s, moderation.NewUseCase(s, s.Companies(), n, rec, zerolog.Nop()), n, rec
}

func TestUpdateStatus_AprobarYRechazar(t *testing.T) {
	ctx := context.Background()
	s, uc, n, rec := setup(t)

	out, err := uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, dto.CompanyStatusResponse{ID: "c-1", Name: "Company u-1", Status: "approved"}, out.Company)
	c, _ := s.Companies().GetByID(ctx, "c-1")
	assert.Equal(t, entity.StatusApproved, c.Status)
	assert.True(t, c.IsActive)

	out, err = uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "REJECTED", Reason: "telefon i pavlefshëm"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", out.Company.Status)
	c, _ = s.Companies().GetByID(ctx, "c-1")
	assert.Equal(t, entity.StatusRejected, c.Status)
	assert.False(t, c.IsActive)

	require.Len(t, n.sent, 2)
	assert.Equal(t, "u-1@x.com", n.sent[1].To)
	assert.Contains(t, n.sent[1].Text, "telefon i pavlefshëm")
	assert.Equal(t, []string{"pending->approved", "approved->rejected"}, rec.got)
}

func TestUpdateStatus_Idempotente(t *testing.T) {
	ctx := context.Background()
	s, uc, n, rec := setup(t)

	_, err := uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)
	once, _ := s.Companies().GetByID(ctx, "c-1")

	out, err := uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Company.Status)
	twice, _ := s.Companies().GetByID(ctx, "c-1")
	assert.Equal(t, once, twice)
	assert.Len(t, n.sent, 1, "el no-op no reenvía el aviso")
	assert.Len(t, rec.got, 1)
}

func TestUpdateStatus_Errores(t *testing.T) {
	ctx := context.Background()
	_, uc, _, _ := setup(t)

	_, err := uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateStatus(ctx, "c-404", dto.UpdateStatusRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestUpdateStatus_FalloDeAlmacenamientoNoCambiaNada(t *testing.T) {
	ctx := context.Background()
	s, uc, n, _ := setup(t)
	s.InjectFault("Commit", errors.New("connection lost"))

	_, err := uc.UpdateStatus(ctx, "c-1", dto.UpdateStatusRequest{Status: "APPROVED"})
	require.ErrorIs(t, err, domain.ErrStorage)
	c, _ := s.Companies().GetByID(ctx, "c-1")
	assert.Equal(t, entity.StatusPending, c.Status)
	assert.False(t, c.IsActive)
	assert.Empty(t, n.sent)
}

func TestListForAdmin(t *testing.T) {
	ctx := context.Background()
	_, uc, _, _ := setup(t)

	all, err := uc.ListForAdmin(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.Companies, 3)
	assert.Equal(t, "c-3", all.Companies[0].ID, "más recientes primero")
	assert.Equal(t, "approved", all.Companies[0].Status)
	assert.Equal(t, "u-3@x.com", all.Companies[0].Email)
	assert.Equal(t, dto.StatusStats{Pending: 2, Approved: 1}, all.Stats)

	pending, err := uc.ListForAdmin(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending.Companies, 2)
	assert.Equal(t, all.Stats, pending.Stats, "las estadísticas no dependen del filtro")

	_, err = uc.ListForAdmin(ctx, "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
