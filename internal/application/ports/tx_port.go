package ports

import (
	"context"

	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada de lo escrito es visible para otros lectores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}
