package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
)

// CompanyFilter filtros del listado detallado de empresas.
type CompanyFilter struct {
	Status *entity.CompanyStatus
	// VisibleOnly restringe a status = APPROVED AND is_active = true.
	VisibleOnly bool
}

// CompanyRepository define el puerto de persistencia para Company y sus asociaciones.
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrCompanyAlreadyRegistered si el usuario ya tiene empresa.
	Create(ctx context.Context, company *entity.Company) error
	// AddCities y AddServices reciben listas ya deduplicadas; una referencia inexistente
	// devuelve domain.ErrUnknownReference.
	AddCities(ctx context.Context, companyID string, cityIDs []string) error
	AddServices(ctx context.Context, companyID string, services []entity.CompanyService) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Company, error)
	// UpdateStatus es el único escritor de status; is_active se deriva del mismo valor en la misma sentencia.
	UpdateStatus(ctx context.Context, id string, status entity.CompanyStatus, updatedAt time.Time) error
	CityIDs(ctx context.Context, companyID string) ([]string, error)
	Services(ctx context.Context, companyID string) ([]entity.CompanyService, error)
	ListDetailed(ctx context.Context, filter CompanyFilter) ([]*entity.CompanyDetail, error)
	CountByStatus(ctx context.Context) (map[entity.CompanyStatus]int, error)
}
