// Package moderation casos de uso del panel de administración: decisión manual y listado con estadísticas.
package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	rules "github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// UseCase moderación manual de empresas.
type UseCase struct {
	tx        ports.TxRunner
	companies repository.CompanyRepository
	notifier  ports.Notifier
	recorder  ports.Recorder
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. recorder puede ser nil.
func NewUseCase(tx ports.TxRunner, companies repository.CompanyRepository, notifier ports.Notifier, recorder ports.Recorder, log zerolog.Logger) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	return &UseCase{tx: tx, companies: companies, notifier: notifier, recorder: recorder, log: log, now: time.Now}
}

// UpdateStatus aprueba o rechaza una empresa. Repetir la misma decisión es un no-op con éxito
// (sin email ni métrica de transición). El aviso al dueño sale después del commit.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID string, in dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	target, ok := entity.ParseCompanyStatus(in.Status)
	if !ok || target == entity.StatusPending {
		return nil, domain.ErrInvalidTransition
	}
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, domain.ErrCompanyNotFound
	}

	var (
		company *entity.Company
		owner   *entity.User
		from    entity.CompanyStatus
		changed bool
	)
	err := uc.tx.Run(ctx, func(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) error {
		c, err := companyRepo.GetByIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCompanyNotFound
		}
		from = c.Status
		changed, err = rules.Apply(c, target, uc.now())
		if err != nil {
			return err
		}
		if changed {
			if err := companyRepo.UpdateStatus(ctx, c.ID, c.Status, c.UpdatedAt); err != nil {
				return err
			}
			if owner, err = userRepo.GetByID(ctx, c.UserID); err != nil {
				return err
			}
		}
		company = c
		return nil
	})
	if err != nil {
		return nil, domain.StorageError(err)
	}

	if changed {
		uc.recorder.StatusTransition(from.Lower(), company.Status.Lower())
		uc.log.Info().
			Str("company_id", company.ID).
			Str("from", string(from)).
			Str("status", string(company.Status)).
			Msg("estado de empresa actualizado")
		if owner != nil {
			uc.notifier.Notify(notify.StatusEmail(owner.Email, company.Name, company.Status, strings.TrimSpace(in.Reason)))
		}
	}

	return &dto.UpdateStatusResponse{
		Success: true,
		Message: "Statusi i kompanisë u përditësua me sukses",
		Company: dto.CompanyStatusResponse{ID: company.ID, Name: company.Name, Status: company.Status.Lower()},
	}, nil
}

// ListForAdmin empresas (más recientes primero) con estadísticas por estado.
// status vacío o "all" no filtra.
func (uc *UseCase) ListForAdmin(ctx context.Context, status string) (*dto.AdminCompanyListResponse, error) {
	var filter repository.CompanyFilter
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, "all") {
		st, ok := entity.ParseCompanyStatus(s)
		if !ok {
			verr := &domain.ValidationError{}
			verr.Add("status", "oneof=pending approved rejected all")
			return nil, verr
		}
		filter.Status = &st
	}

	list, err := uc.companies.ListDetailed(ctx, filter)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	counts, err := uc.companies.CountByStatus(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	items := make([]dto.AdminCompanyResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.AdminCompanyResponse{
			PublicCompanyResponse: usecase.PublicCompany(d),
			Status:                d.Status.Lower(),
			UpdatedAt:             d.UpdatedAt,
		})
	}
	return &dto.AdminCompanyListResponse{
		Success:   true,
		Companies: items,
		Stats: dto.StatusStats{
			Pending:  counts[entity.StatusPending],
			Approved: counts[entity.StatusApproved],
			Rejected: counts[entity.StatusRejected],
		},
	}, nil
}
