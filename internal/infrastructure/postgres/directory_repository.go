package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.DirectoryRepository = (*DirectoryRepo)(nil)

// DirectoryRepo catálogo (ciudades, categorías, servicios) sobre PostgreSQL.
type DirectoryRepo struct {
	q Querier
}

// NewDirectoryRepository construye el adaptador del catálogo.
func NewDirectoryRepository(q Querier) *DirectoryRepo {
	return &DirectoryRepo{q: q}
}

func (r *DirectoryRepo) ListCities(ctx context.Context) ([]entity.City, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	cities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.City, error) {
		var c entity.City
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan city: %w", err)
	}
	return cities, nil
}

func (r *DirectoryRepo) ListServices(ctx context.Context, filter repository.ServiceFilter) ([]entity.Service, error) {
	query := `
		SELECT s.id, s.name, s.description, s.category_id,
			sc.id, sc.name, sc.description, sc.icon, sc."order"
		FROM services s
		LEFT JOIN service_categories sc ON sc.id = s.category_id
		WHERE ($1::text = '' OR s.category_id = $1::text)
		ORDER BY s.name`
	rows, err := r.q.Query(ctx, query, filter.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var out []entity.Service
	for rows.Next() {
		var (
			s                entity.Service
			catID, catName   *string
			catDesc, catIcon *string
			catOrder         *int
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID,
			&catID, &catName, &catDesc, &catIcon, &catOrder); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		if filter.IncludeCategory && catID != nil {
			s.Category = &entity.ServiceCategory{ID: *catID, Name: *catName, Description: catDesc, Icon: catIcon, Order: *catOrder}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) ListCategories(ctx context.Context) ([]entity.ServiceCategory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, icon, "order" FROM service_categories
		ORDER BY "order", name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ServiceCategory, error) {
		var c entity.ServiceCategory
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Order)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	services, err := r.ListServices(ctx, repository.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(cats))
	for i := range cats {
		index[cats[i].ID] = i
	}
	for _, s := range services {
		if s.CategoryID == nil {
			continue
		}
		if i, ok := index[*s.CategoryID]; ok {
			cats[i].Services = append(cats[i].Services, s)
		}
	}
	return cats, nil
}

func (r *DirectoryRepo) MissingCityIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.missing(ctx, "cities", ids)
}

func (r *DirectoryRepo) MissingServiceIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.missing(ctx, "services", ids)
}

// missing devuelve los ids ausentes de table conservando el orden recibido.
func (r *DirectoryRepo) missing(ctx context.Context, table string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT want.id FROM unnest($1::text[]) WITH ORDINALITY AS want(id, pos)
		WHERE NOT EXISTS (SELECT 1 FROM ` + table + ` t WHERE t.id = want.id)
		ORDER BY want.pos`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", table, err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", table, err)
	}
	return missing, nil
}

// UpsertCity inserta la ciudad si no existe; devuelve la fila vigente.
func (r *DirectoryRepo) UpsertCity(ctx context.Context, name string) (*entity.City, error) {
	query := `
		INSERT INTO cities (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`
	var c entity.City
	if err := r.q.QueryRow(ctx, query, uuid.New().String(), name).Scan(&c.ID, &c.Name); err != nil {
		return nil, fmt.Errorf("upsert city: %w", err)
	}
	return &c, nil
}

// UpsertCategory crea la categoría si no existe; una existente no se modifica.
func (r *DirectoryRepo) UpsertCategory(ctx context.Context, category *entity.ServiceCategory) error {
	id := category.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `
		INSERT INTO service_categories (id, name, description, icon, "order")
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, id, category.Name, category.Description, category.Icon, category.Order).
		Scan(&category.ID); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// UpsertService crea el servicio o actualiza descripción y categoría.
func (r *DirectoryRepo) UpsertService(ctx context.Context, service *entity.Service) error {
	id := service.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `
		INSERT INTO services (id, name, description, category_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, category_id = EXCLUDED.category_id
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, id, service.Name, service.Description, service.CategoryID).
		Scan(&service.ID); err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}
	return nil
}
