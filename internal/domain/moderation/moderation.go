// Package moderation concentra las transiciones de estado de una Company.
//
// Toda escritura de Status pasa por Apply, que fija Status e IsActive juntos:
// IsActive == (Status == APPROVED) después de cualquier transición.
package moderation

import (
	"time"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
)

// ActiveFor deriva el flag isActive de un estado.
func ActiveFor(status entity.CompanyStatus) bool {
	return status == entity.StatusApproved
}

// ShouldAutoApprove regla de auto-aprobación: al menos una ciudad y al menos un servicio.
// Se evalúa una sola vez, al cerrar el registro de la empresa.
func ShouldAutoApprove(cityCount, serviceCount int) bool {
	return cityCount > 0 && serviceCount > 0
}

// Apply lleva la empresa al estado destino (APPROVED o REJECTED).
// Devuelve changed=false si ya estaba en ese estado con el flag coherente (idempotente).
// Una fila APPROVED con IsActive=false se repara al volver a aprobar.
func Apply(c *entity.Company, target entity.CompanyStatus, now time.Time) (changed bool, err error) {
	if target != entity.StatusApproved && target != entity.StatusRejected {
		return false, domain.ErrInvalidTransition
	}
	active := ActiveFor(target)
	if c.Status == target && c.IsActive == active {
		return false, nil
	}
	c.Status = target
	c.IsActive = active
	c.UpdatedAt = now
	return true, nil
}

// IsVisible compuerta de visibilidad para clientes. Se comprueban ambas condiciones
// por separado, aunque Apply las mantiene siempre alineadas.
func IsVisible(c *entity.Company) bool {
	if c == nil {
		return false
	}
	return c.Status == entity.StatusApproved && c.IsActive
}

// Consistent indica si la pareja status/isActive es una salida válida del sistema.
func Consistent(c *entity.Company) bool {
	return c.IsActive == ActiveFor(c.Status)
}
