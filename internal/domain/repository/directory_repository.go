package repository

import (
	"context"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
)

// ServiceFilter filtros del listado de servicios.
type ServiceFilter struct {
	CategoryID      string
	IncludeCategory bool
}

// DirectoryReader lectura del catálogo compartido (ciudades, servicios, categorías). Sin efectos.
type DirectoryReader interface {
	ListCities(ctx context.Context) ([]entity.City, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]entity.Service, error)
	ListCategories(ctx context.Context) ([]entity.ServiceCategory, error)
	// MissingCityIDs y MissingServiceIDs devuelven los ids que no existen, en el orden recibido.
	MissingCityIDs(ctx context.Context, ids []string) ([]string, error)
	MissingServiceIDs(ctx context.Context, ids []string) ([]string, error)
}

// DirectoryWriter alta del catálogo por nombre (seed). Nunca lo usa el flujo de registro.
// UpsertCategory deja intacta una categoría existente; UpsertService actualiza descripción y categoría.
// Ambos rellenan el ID del argumento.
type DirectoryWriter interface {
	UpsertCity(ctx context.Context, name string) (*entity.City, error)
	UpsertCategory(ctx context.Context, category *entity.ServiceCategory) error
	UpsertService(ctx context.Context, service *entity.Service) error
}

// DirectoryRepository lectura + escritura del catálogo.
type DirectoryRepository interface {
	DirectoryReader
	DirectoryWriter
}
