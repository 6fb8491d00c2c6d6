// Package directory lectura y carga inicial del catálogo (ciudades, categorías, servicios).
package directory

import (
	"context"
	"strings"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// UseCase consultas del catálogo. Sin efectos.
type UseCase struct {
	reader repository.DirectoryReader
}

// NewUseCase construye el caso de uso. reader puede ser la versión cacheada.
func NewUseCase(reader repository.DirectoryReader) *UseCase {
	return &UseCase{reader: reader}
}

// ListCities ciudades ordenadas por nombre.
func (uc *UseCase) ListCities(ctx context.Context) (*dto.CityListResponse, error) {
	cities, err := uc.reader.ListCities(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	out := make([]dto.CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, dto.CityResponse{ID: c.ID, Name: c.Name})
	}
	return &dto.CityListResponse{Success: true, Cities: out}, nil
}

// ListServices servicios ordenados por nombre; categoryID vacío no filtra.
func (uc *UseCase) ListServices(ctx context.Context, categoryID string, includeCategory bool) (*dto.ServiceListResponse, error) {
	services, err := uc.reader.ListServices(ctx, repository.ServiceFilter{
		CategoryID:      strings.TrimSpace(categoryID),
		IncludeCategory: includeCategory,
	})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	out := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, serviceResponse(s))
	}
	return &dto.ServiceListResponse{Success: true, Services: out}, nil
}

// ListCategories categorías por orden, cada una con sus servicios.
func (uc *UseCase) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	cats, err := uc.reader.ListCategories(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		cr := categoryResponse(c)
		cr.Services = make([]dto.ServiceResponse, 0, len(c.Services))
		for _, s := range c.Services {
			cr.Services = append(cr.Services, serviceResponse(s))
		}
		out = append(out, cr)
	}
	return &dto.CategoryListResponse{Success: true, Categories: out}, nil
}

func serviceResponse(s entity.Service) dto.ServiceResponse {
	r := dto.ServiceResponse{ID: s.ID, Name: s.Name, Description: s.Description, CategoryID: s.CategoryID}
	if s.Category != nil {
		c := categoryResponse(*s.Category)
		r.Category = &c
	}
	return r
}

func categoryResponse(c entity.ServiceCategory) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon, Order: c.Order}
}
