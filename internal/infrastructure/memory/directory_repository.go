package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.DirectoryRepository = (*DirectoryRepo)(nil)

// DirectoryRepo catálogo en memoria. Los nombres son únicos tal cual (sin normalizar).
type DirectoryRepo struct {
	v view
}

// PutCity inserta una ciudad con id fijo (fixtures de tests).
func (r *DirectoryRepo) PutCity(c entity.City) {
	_ = r.v.with("PutCity", func(st *state) error {
		st.cities[c.ID] = c
		st.cityByName[c.Name] = c.ID
		return nil
	})
}

// PutService inserta un servicio con id fijo (fixtures de tests).
func (r *DirectoryRepo) PutService(s entity.Service) {
	_ = r.v.with("PutService", func(st *state) error {
		s.Category = nil
		st.services[s.ID] = s
		st.serviceByName[s.Name] = s.ID
		return nil
	})
}

func (r *DirectoryRepo) ListCities(_ context.Context) ([]entity.City, error) {
	var out []entity.City
	err := r.v.with("ListCities", func(st *state) error {
		out = make([]entity.City, 0, len(st.cities))
		for _, c := range st.cities {
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *DirectoryRepo) ListServices(_ context.Context, filter repository.ServiceFilter) ([]entity.Service, error) {
	var out []entity.Service
	err := r.v.with("ListServices", func(st *state) error {
		out = make([]entity.Service, 0, len(st.services))
		for _, s := range st.services {
			if filter.CategoryID != "" && (s.CategoryID == nil || *s.CategoryID != filter.CategoryID) {
				continue
			}
			if filter.IncludeCategory && s.CategoryID != nil {
				if cat, ok := st.categories[*s.CategoryID]; ok {
					cat.Services = nil
					s.Category = &cat
				}
			}
			out = append(out, s)
		}
		sortServices(out)
		return nil
	})
	return out, err
}

func (r *DirectoryRepo) ListCategories(_ context.Context) ([]entity.ServiceCategory, error) {
	var out []entity.ServiceCategory
	err := r.v.with("ListCategories", func(st *state) error {
		byCat := map[string][]entity.Service{}
		for _, s := range st.services {
			if s.CategoryID != nil {
				byCat[*s.CategoryID] = append(byCat[*s.CategoryID], s)
			}
		}
		out = make([]entity.ServiceCategory, 0, len(st.categories))
		for _, c := range st.categories {
			c.Services = byCat[c.ID]
			sortServices(c.Services)
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Order == out[j].Order {
				return out[i].Name < out[j].Name
			}
			return out[i].Order < out[j].Order
		})
		return nil
	})
	return out, err
}

func (r *DirectoryRepo) MissingCityIDs(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	err := r.v.with("MissingCityIDs", func(st *state) error {
		for _, id := range ids {
			if _, ok := st.cities[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil
	})
	return missing, err
}

func (r *DirectoryRepo) MissingServiceIDs(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	err := r.v.with("MissingServiceIDs", func(st *state) error {
		for _, id := range ids {
			if _, ok := st.services[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil
	})
	return missing, err
}

func (r *DirectoryRepo) UpsertCity(_ context.Context, name string) (*entity.City, error) {
	var out *entity.City
	err := r.v.with("UpsertCity", func(st *state) error {
		if id, ok := st.cityByName[name]; ok {
			c := st.cities[id]
			out = &c
			return nil
		}
		c := entity.City{ID: uuid.New().String(), Name: name}
		st.cities[c.ID] = c
		st.cityByName[name] = c.ID
		out = &c
		return nil
	})
	return out, err
}

func (r *DirectoryRepo) UpsertCategory(_ context.Context, category *entity.ServiceCategory) error {
	return r.v.with("UpsertCategory", func(st *state) error {
		if id, ok := st.categoryByName[category.Name]; ok {
			// una categoría existente no se modifica
			category.ID = id
			return nil
		}
		if category.ID == "" {
			category.ID = uuid.New().String()
		}
		stored := *category
		stored.Services = nil
		st.categories[stored.ID] = stored
		st.categoryByName[stored.Name] = stored.ID
		return nil
	})
}

func (r *DirectoryRepo) UpsertService(_ context.Context, service *entity.Service) error {
	return r.v.with("UpsertService", func(st *state) error {
		if id, ok := st.serviceByName[service.Name]; ok {
			service.ID = id
		} else if service.ID == "" {
			service.ID = uuid.New().String()
		}
		stored := *service
		stored.Category = nil
		st.services[stored.ID] = stored
		st.serviceByName[stored.Name] = stored.ID
		return nil
	})
}

func sortServices(s []entity.Service) {
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
}
