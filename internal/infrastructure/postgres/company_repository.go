package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `c.id, c.user_id, c.name, c.phone, c.description, c.logo, c.status, c.is_active, c.created_at, c.updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. companies.user_id es único.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, user_id, name, phone, description, logo, status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.UserID, company.Name, company.Phone, company.Description, company.Logo,
		string(company.Status), company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrCompanyAlreadyRegistered
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("insert company: %w", err)
}

// AddCities inserta los pares (empresa, ciudad) en una sola sentencia.
func (r *CompanyRepo) AddCities(ctx context.Context, companyID string, cityIDs []string) error {
	query := `
		INSERT INTO company_cities (company_id, city_id)
		SELECT $1, unnest($2::text[])`
	if _, err := r.q.Exec(ctx, query, companyID, cityIDs); err != nil {
		return associationError("company cities", err)
	}
	return nil
}

// AddServices inserta los pares (empresa, servicio) con su precio en un batch.
func (r *CompanyRepo) AddServices(ctx context.Context, companyID string, services []entity.CompanyService) error {
	batch := &pgx.Batch{}
	for _, s := range services {
		batch.Queue(`INSERT INTO company_services (company_id, service_id, price) VALUES ($1, $2, $3)`,
			companyID, s.ServiceID, s.Price)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range services {
		if _, err := br.Exec(); err != nil {
			return associationError("company services", err)
		}
	}
	return nil
}

func associationError(what string, err error) error {
	if isForeignKeyViolation(err) {
		name := constraintName(err)
		if strings.Contains(name, "company_id") {
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("%w: %s", domain.ErrUnknownReference, name)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id)
}

// GetByIDForUpdate SELECT ... FOR UPDATE; solo tiene sentido dentro de una tx.
func (r *CompanyRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1 FOR UPDATE`, id)
}

// GetByUserID obtiene la empresa de un usuario.
func (r *CompanyRepo) GetByUserID(ctx context.Context, userID string) (*entity.Company, error) {
	return r.findOne(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.user_id = $1`, userID)
}

// UpdateStatus status e is_active en la misma sentencia; el CHECK de la tabla exige que coincidan.
func (r *CompanyRepo) UpdateStatus(ctx context.Context, id string, status entity.CompanyStatus, updatedAt time.Time) error {
	query := `
		UPDATE companies SET status = $2, is_active = ($2 = 'APPROVED'), updated_at = $3
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update company status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// CityIDs ids de ciudades asociadas.
func (r *CompanyRepo) CityIDs(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT city_id FROM company_cities WHERE company_id = $1 ORDER BY city_id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company cities: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan company cities: %w", err)
	}
	return ids, nil
}

// Services servicios asociados con su precio.
func (r *CompanyRepo) Services(ctx context.Context, companyID string) ([]entity.CompanyService, error) {
	rows, err := r.q.Query(ctx, `
		SELECT company_id, service_id, price FROM company_services
		WHERE company_id = $1 ORDER BY service_id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company services: %w", err)
	}
	defer rows.Close()
	var out []entity.CompanyService
	for rows.Next() {
		var s entity.CompanyService
		if err := rows.Scan(&s.CompanyID, &s.ServiceID, &s.Price); err != nil {
			return nil, fmt.Errorf("scan company service: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListDetailed empresas con email del dueño, ciudades y servicios, por created_at desc.
// Las relaciones se leen en un único batch para todas las empresas devueltas.
func (r *CompanyRepo) ListDetailed(ctx context.Context, filter repository.CompanyFilter) ([]*entity.CompanyDetail, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.VisibleOnly {
		where = append(where, "c.status = 'APPROVED' AND c.is_active = true")
	}
	query := `SELECT ` + companyColumns + `, u.email FROM companies c JOIN users u ON u.id = c.user_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	var (
		list []*entity.CompanyDetail
		ids  []string
		byID = map[string]*entity.CompanyDetail{}
	)
	for rows.Next() {
		d := &entity.CompanyDetail{}
		if err := scanCompany(rows, &d.Company, &d.OwnerEmail); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT cc.company_id, ci.id, ci.name FROM company_cities cc
		JOIN cities ci ON ci.id = cc.city_id
		WHERE cc.company_id = ANY($1) ORDER BY ci.name`, ids).
		Query(func(rows pgx.Rows) error {
			for rows.Next() {
				var companyID string
				var city entity.City
				if err := rows.Scan(&companyID, &city.ID, &city.Name); err != nil {
					return err
				}
				byID[companyID].Cities = append(byID[companyID].Cities, city)
			}
			return rows.Err()
		})
	batch.Queue(`
		SELECT cs.company_id, s.id, s.name, cs.price FROM company_services cs
		JOIN services s ON s.id = cs.service_id
		WHERE cs.company_id = ANY($1) ORDER BY s.name`, ids).
		Query(func(rows pgx.Rows) error {
			for rows.Next() {
				var companyID string
				var svc entity.OfferedService
				if err := rows.Scan(&companyID, &svc.ServiceID, &svc.Name, &svc.Price); err != nil {
					return err
				}
				byID[companyID].Services = append(byID[companyID].Services, svc)
			}
			return rows.Err()
		})
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("list company relations: %w", err)
	}
	return list, nil
}

// CountByStatus conteo por estado para las estadísticas del panel admin.
func (r *CompanyRepo) CountByStatus(ctx context.Context) (map[entity.CompanyStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}
	defer rows.Close()
	out := map[entity.CompanyStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan company count: %w", err)
		}
		out[entity.CompanyStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *CompanyRepo) findOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	if err := scanCompany(r.q.QueryRow(ctx, query, arg), &c); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

func scanCompany(row pgx.Row, c *entity.Company, extra ...any) error {
	var status string
	dest := append([]any{
		&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Description, &c.Logo,
		&status, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	c.Status = entity.CompanyStatus(status)
	return nil
}
