// Package memory implementa los puertos de persistencia en memoria (APP_STORAGE=memory y tests).
//
// Las transacciones son serializables: Run toma el mutex del Store durante todo el callback,
// trabaja sobre una copia del estado y solo la publica si el callback no devuelve error.
// Los índices únicos (email, companies.user_id, nombres del catálogo) se comprueban igual que en PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	users           map[string]entity.User
	userByEmail     map[string]string
	companies       map[string]entity.Company
	companyByUser   map[string]string
	companyCities   map[string][]string
	companyServices map[string][]entity.CompanyService
	resetTokens     map[string]entity.PasswordResetToken

	cities         map[string]entity.City
	cityByName     map[string]string
	categories     map[string]entity.ServiceCategory
	categoryByName map[string]string
	services       map[string]entity.Service
	serviceByName  map[string]string
}

func newState() *state {
	return &state{
		users:           map[string]entity.User{},
		userByEmail:     map[string]string{},
		companies:       map[string]entity.Company{},
		companyByUser:   map[string]string{},
		companyCities:   map[string][]string{},
		companyServices: map[string][]entity.CompanyService{},
		resetTokens:     map[string]entity.PasswordResetToken{},
		cities:          map[string]entity.City{},
		cityByName:      map[string]string{},
		categories:      map[string]entity.ServiceCategory{},
		categoryByName:  map[string]string{},
		services:        map[string]entity.Service{},
		serviceByName:   map[string]string{},
	}
}

func (s *state) clone() *state {
	c := newState()
	copyMap(c.users, s.users)
	copyMap(c.userByEmail, s.userByEmail)
	copyMap(c.companies, s.companies)
	copyMap(c.companyByUser, s.companyByUser)
	for k, v := range s.companyCities {
		c.companyCities[k] = append([]string(nil), v...)
	}
	for k, v := range s.companyServices {
		c.companyServices[k] = append([]entity.CompanyService(nil), v...)
	}
	copyMap(c.resetTokens, s.resetTokens)
	copyMap(c.cities, s.cities)
	copyMap(c.cityByName, s.cityByName)
	copyMap(c.categories, s.categories)
	copyMap(c.categoryByName, s.categoryByName)
	copyMap(c.services, s.services)
	copyMap(c.serviceByName, s.serviceByName)
	return c
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// Store estado compartido. El valor cero no se usa: construir con NewStore.
type Store struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// InjectFault hace que la próxima llamada a op (p.ej. "AddServices") devuelva err. Un solo disparo.
func (s *Store) InjectFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault se llama con el mutex tomado.
func (s *Store) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		delete(s.faults, op)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Run ejecuta fn con repositorios atados a una copia del estado; la copia reemplaza al estado solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	tx := s.st.clone()
	v := view{store: s, tx: tx}
	if err := fn(&UserRepo{v: v}, &CompanyRepo{v: v}); err != nil {
		return err
	}
	if err := s.fault("Commit"); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.st = tx
	return nil
}

// Users repositorio fuera de transacción (cada llamada es atómica).
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{store: s}} }

// Companies repositorio fuera de transacción.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{v: view{store: s}} }

// PasswordResets tokens de recuperación.
func (s *Store) PasswordResets() *PasswordResetRepo { return &PasswordResetRepo{v: view{store: s}} }

// Directory catálogo.
func (s *Store) Directory() *DirectoryRepo { return &DirectoryRepo{v: view{store: s}} }

// view elige entre el estado de una transacción abierta o el estado publicado (con lock).
type view struct {
	store *Store
	tx    *state
}

func (v view) with(op string, fn func(st *state) error) error {
	if v.tx != nil {
		if err := v.store.fault(op); err != nil {
			return err
		}
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if err := v.store.fault(op); err != nil {
		return err
	}
	return fn(v.store.st)
}
