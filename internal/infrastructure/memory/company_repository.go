package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/moderation"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var (
	errDuplicatePair = errors.New("duplicate key value violates unique constraint")
	errPriceCheck    = errors.New("new row violates check constraint company_services_price_check")
)

// CompanyRepo empresas y asociaciones en memoria.
type CompanyRepo struct {
	v view
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.with("CreateCompany", func(st *state) error {
		if _, ok := st.users[c.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		if _, ok := st.companyByUser[c.UserID]; ok {
			return domain.ErrCompanyAlreadyRegistered
		}
		st.companies[c.ID] = *c
		st.companyByUser[c.UserID] = c.ID
		return nil
	})
}

func (r *CompanyRepo) AddCities(_ context.Context, companyID string, cityIDs []string) error {
	return r.v.with("AddCities", func(st *state) error {
		if _, ok := st.companies[companyID]; !ok {
			return domain.ErrCompanyNotFound
		}
		current := st.companyCities[companyID]
		for _, id := range cityIDs {
			if _, ok := st.cities[id]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrUnknownReference, id)
			}
			for _, have := range current {
				if have == id {
					return fmt.Errorf("company_cities (%s, %s): %w", companyID, id, errDuplicatePair)
				}
			}
			current = append(current, id)
		}
		st.companyCities[companyID] = current
		return nil
	})
}

func (r *CompanyRepo) AddServices(_ context.Context, companyID string, services []entity.CompanyService) error {
	return r.v.with("AddServices", func(st *state) error {
		if _, ok := st.companies[companyID]; !ok {
			return domain.ErrCompanyNotFound
		}
		current := st.companyServices[companyID]
		for _, s := range services {
			if _, ok := st.services[s.ServiceID]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrUnknownReference, s.ServiceID)
			}
			if !s.Price.IsPositive() {
				return errPriceCheck
			}
			for _, have := range current {
				if have.ServiceID == s.ServiceID {
					return fmt.Errorf("company_services (%s, %s): %w", companyID, s.ServiceID, errDuplicatePair)
				}
			}
			s.CompanyID = companyID
			current = append(current, s)
		}
		st.companyServices[companyID] = current
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.with("GetCompanyByID", func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate igual que GetByID: el mutex de la transacción ya serializa.
func (r *CompanyRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r *CompanyRepo) GetByUserID(_ context.Context, userID string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.with("GetCompanyByUserID", func(st *state) error {
		if id, ok := st.companyByUser[userID]; ok {
			c := st.companies[id]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) UpdateStatus(_ context.Context, id string, status entity.CompanyStatus, updatedAt time.Time) error {
	return r.v.with("UpdateStatus", func(st *state) error {
		c, ok := st.companies[id]
		if !ok {
			return domain.ErrCompanyNotFound
		}
		c.Status = status
		c.IsActive = moderation.ActiveFor(status)
		c.UpdatedAt = updatedAt
		st.companies[id] = c
		return nil
	})
}

func (r *CompanyRepo) CityIDs(_ context.Context, companyID string) ([]string, error) {
	var out []string
	err := r.v.with("CityIDs", func(st *state) error {
		out = append([]string{}, st.companyCities[companyID]...)
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Services(_ context.Context, companyID string) ([]entity.CompanyService, error) {
	var out []entity.CompanyService
	err := r.v.with("Services", func(st *state) error {
		out = append([]entity.CompanyService{}, st.companyServices[companyID]...)
		return nil
	})
	return out, err
}

func (r *CompanyRepo) ListDetailed(_ context.Context, filter repository.CompanyFilter) ([]*entity.CompanyDetail, error) {
	var out []*entity.CompanyDetail
	err := r.v.with("ListDetailed", func(st *state) error {
		out = make([]*entity.CompanyDetail, 0, len(st.companies))
		for _, c := range st.companies {
			if filter.Status != nil && c.Status != *filter.Status {
				continue
			}
			if filter.VisibleOnly && !(c.Status == entity.StatusApproved && c.IsActive) {
				continue
			}
			d := &entity.CompanyDetail{Company: c, OwnerEmail: st.users[c.UserID].Email}
			for _, id := range st.companyCities[c.ID] {
				d.Cities = append(d.Cities, st.cities[id])
			}
			for _, s := range st.companyServices[c.ID] {
				d.Services = append(d.Services, entity.OfferedService{
					ServiceID: s.ServiceID,
					Name:      st.services[s.ServiceID].Name,
					Price:     s.Price,
				})
			}
			out = append(out, d)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (r *CompanyRepo) CountByStatus(_ context.Context) (map[entity.CompanyStatus]int, error) {
	out := map[entity.CompanyStatus]int{}
	err := r.v.with("CountByStatus", func(st *state) error {
		for _, c := range st.companies {
			out[c.Status]++
		}
		return nil
	})
	return out, err
}
