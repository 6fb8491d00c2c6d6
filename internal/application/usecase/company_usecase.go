package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// CompanyUseCase listado público de empresas (compuerta de visibilidad).
type CompanyUseCase struct {
	repo repository.CompanyRepository
	log  zerolog.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, log zerolog.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, log: log}
}

// ListVisible empresas aprobadas y activas. La consulta ya filtra por ambas columnas;
// cada fila se vuelve a comprobar con moderation.IsVisible y las incoherentes se descartan.
func (uc *CompanyUseCase) ListVisible(ctx context.Context) (*dto.PublicCompanyListResponse, error) {
	list, err := uc.repo.ListDetailed(ctx, repository.CompanyFilter{VisibleOnly: true})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	items := make([]dto.PublicCompanyResponse, 0, len(list))
	for _, d := range list {
		if !moderation.IsVisible(&d.Company) {
			uc.log.Warn().Str("company_id", d.ID).Str("status", string(d.Status)).Bool("is_active", d.IsActive).
				Msg("empresa incoherente excluida del listado público")
			continue
		}
		items = append(items, PublicCompany(d))
	}
	return &dto.PublicCompanyListResponse{Success: true, Companies: items}, nil
}

// PublicCompany formato de salida de una empresa con sus relaciones.
func PublicCompany(d *entity.CompanyDetail) dto.PublicCompanyResponse {
	cities := make([]string, 0, len(d.Cities))
	for _, c := range d.Cities {
		cities = append(cities, c.Name)
	}
	services := make([]dto.OfferedServiceResponse, 0, len(d.Services))
	for _, s := range d.Services {
		services = append(services, dto.OfferedServiceResponse{Name: s.Name, Price: s.Price})
	}
	return dto.PublicCompanyResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Phone:       d.Phone,
		Email:       d.OwnerEmail,
		Logo:        d.Logo,
		Cities:      cities,
		Services:    services,
		CreatedAt:   d.CreatedAt,
	}
}
