// Package contact mensajes de clientes a empresas del directorio.
package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

const (
	sendTimeout = 15 * time.Second
	sentMessage = "Mesazhi u dërgua me sukses"
)

// UseCase envía el mensaje al dueño de una empresa visible. El destinatario sale de la BD,
// nunca de la petición. El envío es síncrono: el cliente sabe si el mensaje salió.
type UseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	sender    ports.EmailSender
	recorder  ports.Recorder
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso. recorder nil no registra métricas.
func NewUseCase(users repository.UserRepository, companies repository.CompanyRepository, sender ports.EmailSender, recorder ports.Recorder, log zerolog.Logger) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	return &UseCase{users: users, companies: companies, sender: sender, recorder: recorder, log: log}
}

// Send entrega el mensaje. Empresa inexistente o no visible: ErrCompanyNotFound.
// Sin canal de correo configurado o fallo del canal: ErrUpstreamUnavailable.
func (uc *UseCase) Send(ctx context.Context, in dto.ContactRequest) (*dto.MessageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !moderation.IsVisible(company) {
		return nil, domain.ErrCompanyNotFound
	}
	owner, err := uc.users.GetByID(ctx, company.UserID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if owner == nil {
		return nil, domain.ErrCompanyNotFound
	}

	msg := notify.ContactEmail(owner.Email, usecase.NormalizeEmail(in.From), company.Name, in.Message)
	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	delivery, err := uc.sender.Send(sctx, msg)
	if err != nil {
		uc.recorder.Notification("failed")
		uc.log.Error().Err(err).Str("company_id", company.ID).Msg("mensaje de contacto no enviado")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	uc.recorder.Notification(string(delivery))
	if delivery == ports.Skipped {
		uc.log.Warn().Str("company_id", company.ID).Msg("mensaje de contacto sin canal de correo")
		return nil, domain.ErrUpstreamUnavailable
	}
	uc.log.Info().Str("company_id", company.ID).Str("delivery", string(delivery)).Msg("mensaje de contacto enviado")
	return &dto.MessageResponse{Success: true, Message: sentMessage}, nil
}
